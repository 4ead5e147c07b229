package enum

// Payment modes recognized by the per-mode breakdown. The field itself is
// an open string domain on the wire: anything outside these three still
// contributes to overall totals but lands in no breakdown bucket.
const (
	PaymentModeCash = "Cash"
	PaymentModeCard = "Card"
	PaymentModeUPI  = "UPI"
)

// RecognizedPaymentModes lists the breakdown bucket keys in display order.
var RecognizedPaymentModes = []string{PaymentModeCash, PaymentModeCard, PaymentModeUPI}

// IsRecognizedPaymentMode reports whether mode maps to a breakdown bucket.
func IsRecognizedPaymentMode(mode string) bool {
	return mode == PaymentModeCash || mode == PaymentModeCard || mode == PaymentModeUPI
}
