// Package numword renders whole monetary amounts as English words for
// printed receipts.
package numword

var ones = [20]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [10]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// ToWords converts a non-negative whole amount into its receipt wording,
// e.g. 1999 -> "One Thousand Nine Hundred And Ninety Nine Only".
//
// The largest named scale is Thousand: amounts of a million and above come
// out as nested Thousand groupings ("One Thousand Thousand ..."), matching
// the receipts the hospital has always printed. Callers must truncate
// fractional amounts before calling.
func ToWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}
	return numToStr(n) + " Only"
}

func numToStr(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		s := tens[n/10]
		if n%10 != 0 {
			s += " " + numToStr(n%10)
		}
		return s
	case n < 1000:
		s := ones[n/100] + " Hundred"
		if n%100 != 0 {
			s += " And " + numToStr(n%100)
		}
		return s
	default:
		s := numToStr(n/1000) + " Thousand"
		if n%1000 != 0 {
			s += " " + numToStr(n%1000)
		}
		return s
	}
}
