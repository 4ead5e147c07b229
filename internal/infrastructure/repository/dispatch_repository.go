package repository

import (
	"context"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	domainRepo "github.com/kamande/caredesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

// dispatchRepository is the GORM-backed dispatch journal.
type dispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository creates a new dispatch repository
func NewDispatchRepository(db *gorm.DB) domainRepo.DispatchRepository {
	return &dispatchRepository{db: db}
}

func (r *dispatchRepository) Create(ctx context.Context, record *entity.DispatchRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *dispatchRepository) ListByBill(ctx context.Context, billID string) ([]entity.DispatchRecord, error) {
	var records []entity.DispatchRecord
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
