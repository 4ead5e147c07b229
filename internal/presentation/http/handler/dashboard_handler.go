package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/application/service"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/internal/presentation/http/dto/response"
)

// DashboardHandler serves the billing dashboard aggregates.
type DashboardHandler struct {
	bills        repository.BillSource
	statsService *service.StatsService
	loc          *time.Location
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(bills repository.BillSource, statsService *service.StatsService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{bills: bills, statsService: statsService, loc: loc}
}

// GetStats handles getting the headline dashboard statistics. An optional
// date query parameter pins the "today" reference for reproducible reads;
// it defaults to the current hospital-local date.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	refDate, err := h.parseDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	bills, err := h.bills.ListBills(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats := h.statsService.OverallStats(bills, refDate)
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetBreakdown handles the per-payment-mode breakdown for one calendar
// date, defaulting to today.
func (h *DashboardHandler) GetBreakdown(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	targetDate, err := h.parseDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	bills, err := h.bills.ListBills(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	breakdown := h.statsService.PaymentModeBreakdown(bills, targetDate)
	response.OK(c, "Payment mode breakdown retrieved successfully", breakdown)
}

func (h *DashboardHandler) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().In(h.loc), nil
	}
	return time.ParseInLocation("2006-01-02", raw, h.loc)
}
