package service

import (
	"log/slog"
	"time"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/pkg/numword"
)

// ReceiptService builds the printable receipt payload for a bill.
type ReceiptService struct {
	loc *time.Location
}

// NewReceiptService creates a new receipt service
func NewReceiptService(loc *time.Location) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptService{loc: loc}
}

// ReceiptLine is one printed charge line.
type ReceiptLine struct {
	Name   string  `json:"name"`
	Charge float64 `json:"charge"`
	Qty    int     `json:"qty"`
	Amount float64 `json:"amount"`
}

// Receipt is the payload the front desk prints for a bill.
type Receipt struct {
	ReceiptNo     string        `json:"receipt_no"`
	BillID        string        `json:"bill_id"`
	Date          string        `json:"date"`
	Status        string        `json:"status"`
	PatientName   string        `json:"patient_name"`
	MRN           string        `json:"mrn"`
	Age           int           `json:"age,omitempty"`
	Gender        string        `json:"gender,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	DoctorName    string        `json:"doctor_name"`
	PaymentMode   string        `json:"payment_mode,omitempty"`
	Lines         []ReceiptLine `json:"lines"`
	Amount        float64       `json:"amount"`
	AmountInWords string        `json:"amount_in_words"`

	// AmountMismatch flags bills whose amount disagrees with the sum of
	// their line items. The billing service owns the amount, so the
	// discrepancy is surfaced, never corrected.
	AmountMismatch bool `json:"amount_mismatch,omitempty"`
}

// Build composes the receipt for a bill. The amount is truncated to a
// whole figure before word conversion.
func (s *ReceiptService) Build(bill *entity.Bill) *Receipt {
	receipt := &Receipt{
		ReceiptNo:     bill.ReceiptNo(),
		BillID:        bill.ID,
		Date:          bill.CreatedAt.In(s.loc).Format("02 Jan 2006 15:04"),
		Status:        bill.StatusLabel(),
		PatientName:   bill.Patient.Name,
		MRN:           bill.Patient.MRN,
		Age:           bill.Patient.Age,
		Gender:        bill.Patient.Gender,
		Phone:         bill.Patient.Phone,
		Address:       bill.Patient.Address.String(),
		DoctorName:    bill.Doctor.Name,
		PaymentMode:   bill.PaymentMode,
		Amount:        bill.Amount,
		AmountInWords: numword.ToWords(int64(bill.Amount)),
	}

	receipt.Lines = make([]ReceiptLine, 0, len(bill.BillItems))
	for _, item := range bill.BillItems {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Name:   item.Name,
			Charge: item.Charge,
			Qty:    item.Qty,
			Amount: item.LineTotal(),
		})
	}

	if len(bill.BillItems) > 0 && !bill.AmountMatchesItems() {
		receipt.AmountMismatch = true
		slog.Warn("bill amount disagrees with line items",
			"bill_id", bill.ID,
			"amount", bill.Amount,
			"items_total", bill.ItemsTotal(),
		)
	}

	return receipt
}
