package service

import (
	"sort"
	"strings"
	"time"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/internal/domain/enum"
)

// recentWindowSize caps the date-unfiltered "recent bills" view. When a
// date filter is active the window does not apply and every match for that
// date is returned.
const recentWindowSize = 5

// StatsService computes the dashboard statistics from the in-memory bill
// set. All operations are pure: reference dates are passed in explicitly
// and calendar-day comparisons use the hospital's configured timezone.
type StatsService struct {
	loc *time.Location
}

// NewStatsService creates a new stats service
func NewStatsService(loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{loc: loc}
}

// OverallStats holds the headline dashboard figures.
type OverallStats struct {
	TotalBills        int64   `json:"total_bills"`
	PendingBills      int64   `json:"pending_bills"`
	CollectionsToday  float64 `json:"collections_today"`
	TotalCollection   float64 `json:"total_collection"`
	TransactionsToday int64   `json:"transactions_today"`
}

// OverallStats aggregates the whole bill set relative to now. Collections
// sum the billed amount regardless of the paid flag; "today" means the
// same calendar day as now in the hospital timezone.
func (s *StatsService) OverallStats(bills []entity.Bill, now time.Time) *OverallStats {
	stats := &OverallStats{}
	for _, bill := range bills {
		stats.TotalBills++
		if !bill.Paid {
			stats.PendingBills++
		}
		stats.TotalCollection += bill.Amount
		if s.sameDay(bill.CreatedAt, now) {
			stats.CollectionsToday += bill.Amount
			stats.TransactionsToday++
		}
	}
	return stats
}

// ModeBucket is one payment-mode aggregate in a daily breakdown.
type ModeBucket struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// PaymentModeBreakdown aggregates the bills of a single calendar date into
// Cash/Card/UPI buckets. A missing payment mode counts as Cash. A bill
// with an unrecognized mode lands in no bucket at all, even though
// OverallStats still counts its amount; that asymmetry matches how the
// dashboard has always reported and is deliberate.
func (s *StatsService) PaymentModeBreakdown(bills []entity.Bill, targetDate time.Time) map[string]ModeBucket {
	breakdown := make(map[string]ModeBucket, len(enum.RecognizedPaymentModes))
	for _, mode := range enum.RecognizedPaymentModes {
		breakdown[mode] = ModeBucket{}
	}

	for _, bill := range bills {
		if !s.sameDay(bill.CreatedAt, targetDate) {
			continue
		}
		mode := bill.PaymentMode
		if mode == "" {
			mode = enum.PaymentModeCash
		}
		if !enum.IsRecognizedPaymentMode(mode) {
			continue
		}
		bucket := breakdown[mode]
		bucket.Count++
		bucket.Amount += bill.Amount
		breakdown[mode] = bucket
	}
	return breakdown
}

// DisplayQuery filters the bill list shown at the front desk.
type DisplayQuery struct {
	Search string
	Date   *time.Time
}

// FilterForDisplay applies the search and date filters and orders the
// result most recent first. Without a date filter only the five most
// recent matches are returned; with one, every match for that date is.
func (s *StatsService) FilterForDisplay(bills []entity.Bill, query DisplayQuery) []entity.Bill {
	term := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]entity.Bill, 0, len(bills))
	for _, bill := range bills {
		if term != "" && !matchesTerm(bill, term) {
			continue
		}
		if query.Date != nil && !s.sameDay(bill.CreatedAt, *query.Date) {
			continue
		}
		filtered = append(filtered, bill)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if query.Date == nil && len(filtered) > recentWindowSize {
		filtered = filtered[:recentWindowSize]
	}
	return filtered
}

// matchesTerm checks the case-insensitive substring match against bill id,
// patient name and MRN; any one hit is enough.
func matchesTerm(bill entity.Bill, term string) bool {
	return strings.Contains(strings.ToLower(bill.ID), term) ||
		strings.Contains(strings.ToLower(bill.Patient.Name), term) ||
		strings.Contains(strings.ToLower(bill.Patient.MRN), term)
}

func (s *StatsService) sameDay(a, b time.Time) bool {
	a, b = a.In(s.loc), b.In(s.loc)
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
