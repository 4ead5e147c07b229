package entity

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Address is the patient address as stored by the billing service. Older
// records carry it as a plain string, newer ones as a structured object;
// both shapes unmarshal into this type.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*a = Address{Line1: plain}
		return nil
	}

	type alias Address
	var structured alias
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*a = Address(structured)
	return nil
}

// String renders the address as a single display line.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Patient is the demographic snapshot embedded in a bill at billing time.
// It is not an owned entity; the patient registry lives elsewhere.
type Patient struct {
	Name    string  `json:"name"`
	MRN     string  `json:"mrn"`
	Age     int     `json:"age,omitempty"`
	Gender  string  `json:"gender,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address,omitempty"`
}

// Doctor is the treating-doctor snapshot embedded in a bill.
type Doctor struct {
	Name string `json:"name"`
}

// BillItem is a single charge line on a bill.
type BillItem struct {
	Name   string  `json:"name"`
	Charge float64 `json:"charge"`
	Qty    int     `json:"qty"`
}

// LineTotal returns the displayed amount for this line.
func (i BillItem) LineTotal() float64 {
	return i.Charge * float64(i.Qty)
}

// Bill is one billing transaction, created and owned by the remote billing
// service. This API only ever reads bills.
type Bill struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	Amount      float64    `json:"amount"`
	PaymentMode string     `json:"paymentMode,omitempty"`
	Paid        bool       `json:"paid"`
	BillItems   []BillItem `json:"billItems,omitempty"`
	Patient     Patient    `json:"patient"`
	Doctor      Doctor     `json:"doctor"`
}

// ReceiptNo returns the human-readable receipt number: the last six
// characters of the bill id, upper-cased.
func (b Bill) ReceiptNo() string {
	id := b.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// ItemsTotal sums charge x qty over all line items.
func (b Bill) ItemsTotal() float64 {
	var total float64
	for _, item := range b.BillItems {
		total += item.LineTotal()
	}
	return total
}

// AmountMatchesItems reports whether the billed amount agrees with the sum
// of its line items. The billing service does not enforce this, so a
// mismatch is flagged on the receipt rather than corrected here.
func (b Bill) AmountMatchesItems() bool {
	return math.Abs(b.Amount-b.ItemsTotal()) < 0.01
}

// StatusLabel returns the display status derived from the paid flag.
func (b Bill) StatusLabel() string {
	if b.Paid {
		return "Completed"
	}
	return "Pending"
}
