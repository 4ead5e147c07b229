package repository

import (
	"context"

	"github.com/kamande/caredesk-api/internal/domain/entity"
)

// BillSource reads bills from the remote billing service. Bills are
// created and owned there; this API never writes them.
type BillSource interface {
	ListBills(ctx context.Context, sess Session) ([]entity.Bill, error)
	GetBill(ctx context.Context, sess Session, billID string) (*entity.Bill, error)
}
