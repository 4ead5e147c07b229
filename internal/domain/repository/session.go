package repository

import "github.com/google/uuid"

// Session is the explicit request context handed to external-service
// clients. Credentials are always passed this way, never read from ambient
// state.
type Session struct {
	OperatorID uuid.UUID
	Token      string
}
