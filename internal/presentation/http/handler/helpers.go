package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamande/caredesk-api/internal/domain/repository"
)

// GetSession builds the explicit request context passed to the external
// service clients from what the auth middleware stored.
func GetSession(c *gin.Context) (repository.Session, bool) {
	operatorIDVal, exists := c.Get("operator_id")
	if !exists {
		return repository.Session{}, false
	}
	operatorID, ok := operatorIDVal.(uuid.UUID)
	if !ok {
		return repository.Session{}, false
	}
	token, _ := c.Get("session_token")
	tokenStr, _ := token.(string)
	return repository.Session{OperatorID: operatorID, Token: tokenStr}, true
}
