package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kamande/caredesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DispatchRecord is the journal entry written after every dispatch
// invocation, successful or degraded. It is the audit trail the front desk
// consults when a patient reports a missing bill.
type DispatchRecord struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BillID       string            `gorm:"size:64;not null;index" json:"bill_id"`
	OperatorID   uuid.UUID         `gorm:"type:uuid;index" json:"operator_id"`
	Kind         enum.DispatchKind `gorm:"default:0" json:"kind"`
	PDFStaged    bool              `gorm:"default:false" json:"pdf_staged"`
	PDFError     string            `gorm:"size:500" json:"pdf_error,omitempty"`
	LinkComposed bool              `gorm:"default:false" json:"link_composed"`
	ChatURL      string            `gorm:"type:text" json:"chat_url,omitempty"`
	RelaySent    bool              `gorm:"default:false" json:"relay_sent"`
	RelayError   string            `gorm:"size:500" json:"relay_error,omitempty"`
	Notice       string            `gorm:"size:500" json:"notice"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting a new record
func (r *DispatchRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DispatchRecord model
func (DispatchRecord) TableName() string {
	return "dispatch_records"
}
