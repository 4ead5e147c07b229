package service

import (
	"testing"
	"time"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func makeBill(id string, createdAt time.Time, amount float64, mode string, paid bool) entity.Bill {
	return entity.Bill{
		ID:          id,
		CreatedAt:   createdAt,
		Amount:      amount,
		PaymentMode: mode,
		Paid:        paid,
		Patient:     entity.Patient{Name: "Patient " + id, MRN: "MRN-" + id},
	}
}

func TestOverallStats(t *testing.T) {
	svc := NewStatsService(time.UTC)
	yesterday := statsNow.AddDate(0, 0, -1)

	bills := []entity.Bill{
		makeBill("a1", statsNow.Add(-2*time.Hour), 500, enum.PaymentModeCash, true),
		makeBill("a2", statsNow.Add(-1*time.Hour), 300, enum.PaymentModeUPI, false),
		makeBill("a3", yesterday, 1200, enum.PaymentModeCard, true),
		// Unrecognized mode still contributes to every total.
		makeBill("a4", statsNow.Add(-30*time.Minute), 150, "Cheque", false),
	}

	stats := svc.OverallStats(bills, statsNow)

	assert.Equal(t, int64(4), stats.TotalBills)
	assert.Equal(t, int64(2), stats.PendingBills)
	assert.Equal(t, int64(3), stats.TransactionsToday)
	assert.InDelta(t, 950.0, stats.CollectionsToday, 0.001)
	assert.InDelta(t, 2150.0, stats.TotalCollection, 0.001)
}

func TestOverallStats_Empty(t *testing.T) {
	svc := NewStatsService(time.UTC)
	stats := svc.OverallStats(nil, statsNow)

	assert.Equal(t, int64(0), stats.TotalBills)
	assert.Equal(t, int64(0), stats.PendingBills)
	assert.Zero(t, stats.TotalCollection)
}

func TestOverallStats_PaidFlagNeverGatesCollections(t *testing.T) {
	svc := NewStatsService(time.UTC)
	bills := []entity.Bill{
		makeBill("p1", statsNow, 100, enum.PaymentModeCash, false),
		makeBill("p2", statsNow, 200, enum.PaymentModeCash, true),
	}

	stats := svc.OverallStats(bills, statsNow)
	assert.InDelta(t, 300.0, stats.CollectionsToday, 0.001)
	assert.InDelta(t, 300.0, stats.TotalCollection, 0.001)
}

func TestPaymentModeBreakdown(t *testing.T) {
	svc := NewStatsService(time.UTC)
	yesterday := statsNow.AddDate(0, 0, -1)

	bills := []entity.Bill{
		makeBill("b1", statsNow, 500, enum.PaymentModeCash, true),
		makeBill("b2", statsNow, 250, enum.PaymentModeCash, false),
		makeBill("b3", statsNow, 900, enum.PaymentModeUPI, true),
		// Missing mode defaults to Cash.
		makeBill("b4", statsNow, 100, "", true),
		// Unrecognized mode lands in no bucket.
		makeBill("b5", statsNow, 777, "Cheque", true),
		// Wrong date is filtered out entirely.
		makeBill("b6", yesterday, 1000, enum.PaymentModeCard, true),
	}

	breakdown := svc.PaymentModeBreakdown(bills, statsNow)

	require.Len(t, breakdown, 3)
	assert.Equal(t, int64(3), breakdown[enum.PaymentModeCash].Count)
	assert.InDelta(t, 850.0, breakdown[enum.PaymentModeCash].Amount, 0.001)
	assert.Equal(t, int64(1), breakdown[enum.PaymentModeUPI].Count)
	assert.InDelta(t, 900.0, breakdown[enum.PaymentModeUPI].Amount, 0.001)

	// Card had no bills today but the bucket is still present.
	assert.Equal(t, int64(0), breakdown[enum.PaymentModeCard].Count)
	assert.Zero(t, breakdown[enum.PaymentModeCard].Amount)
}

func TestFilterForDisplay_RecentWindow(t *testing.T) {
	svc := NewStatsService(time.UTC)

	bills := make([]entity.Bill, 0, 8)
	for i := 0; i < 8; i++ {
		bills = append(bills, makeBill(
			string(rune('a'+i)),
			statsNow.Add(-time.Duration(i)*time.Hour),
			100, enum.PaymentModeCash, true,
		))
	}

	got := svc.FilterForDisplay(bills, DisplayQuery{})

	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt),
			"results must be ordered most recent first")
	}
	assert.Equal(t, "a", got[0].ID)
}

func TestFilterForDisplay_DateFilterReturnsAllMatches(t *testing.T) {
	svc := NewStatsService(time.UTC)
	yesterday := statsNow.AddDate(0, 0, -1)

	bills := make([]entity.Bill, 0, 9)
	for i := 0; i < 7; i++ {
		bills = append(bills, makeBill(
			string(rune('a'+i)),
			statsNow.Add(-time.Duration(i)*time.Minute),
			100, enum.PaymentModeCash, true,
		))
	}
	bills = append(bills, makeBill("x", yesterday, 100, enum.PaymentModeCash, true))

	got := svc.FilterForDisplay(bills, DisplayQuery{Date: &statsNow})

	// The top-5 window only applies without a date filter.
	require.Len(t, got, 7)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt))
	}
}

func TestFilterForDisplay_Search(t *testing.T) {
	svc := NewStatsService(time.UTC)

	bills := []entity.Bill{
		{ID: "BILL-9001", CreatedAt: statsNow, Patient: entity.Patient{Name: "Asha Verma", MRN: "MRN-100"}},
		{ID: "BILL-9002", CreatedAt: statsNow.Add(-time.Minute), Patient: entity.Patient{Name: "Ravi Kumar", MRN: "MRN-200"}},
		{ID: "BILL-9003", CreatedAt: statsNow.Add(-2 * time.Minute), Patient: entity.Patient{Name: "Meena Rao", MRN: "MRN-300"}},
	}

	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{"by patient name case-insensitive", "asha", []string{"BILL-9001"}},
		{"by MRN", "mrn-200", []string{"BILL-9002"}},
		{"by bill id fragment", "9003", []string{"BILL-9003"}},
		{"substring across all bills", "bill-9", []string{"BILL-9001", "BILL-9002", "BILL-9003"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.FilterForDisplay(bills, DisplayQuery{Search: tt.search})
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSameDayUsesHospitalTimezone(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	svc := NewStatsService(kolkata)

	// 20:00 UTC on March 14 is already March 15 in IST.
	lateUTC := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	istMorning := time.Date(2026, 3, 15, 9, 0, 0, 0, kolkata)

	bills := []entity.Bill{makeBill("tz", lateUTC, 400, enum.PaymentModeCash, true)}
	stats := svc.OverallStats(bills, istMorning)

	assert.Equal(t, int64(1), stats.TransactionsToday)
	assert.InDelta(t, 400.0, stats.CollectionsToday, 0.001)
}
