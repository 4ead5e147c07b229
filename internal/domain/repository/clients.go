package repository

import "context"

// DocumentRenderer is the external PDF rendering service for bills.
type DocumentRenderer interface {
	// Render returns the rendered PDF payload for a bill.
	Render(ctx context.Context, billID string) ([]byte, error)
	// ViewURL returns the stable server-hosted view link for a bill,
	// suitable for embedding in outbound messages.
	ViewURL(billID string) string
}

// MessageRelay is the backend service that delivers a bill document
// through the integrated messaging channel. Only success or failure is
// observed; no payload is consumed.
type MessageRelay interface {
	Send(ctx context.Context, billID string) error
}
