package repository

import (
	"context"

	"github.com/kamande/caredesk-api/internal/domain/entity"
)

// DispatchRepository persists the dispatch journal.
type DispatchRepository interface {
	Create(ctx context.Context, record *entity.DispatchRecord) error
	ListByBill(ctx context.Context, billID string) ([]entity.DispatchRecord, error)
}
