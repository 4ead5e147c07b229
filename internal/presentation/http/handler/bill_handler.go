package handler

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/application/service"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/internal/presentation/http/dto/response"
)

// BillHandler serves the bill list and printable receipts.
type BillHandler struct {
	bills           repository.BillSource
	statsService    *service.StatsService
	receiptService  *service.ReceiptService
	dispatchService *service.DispatchService
	loc             *time.Location
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	bills repository.BillSource,
	statsService *service.StatsService,
	receiptService *service.ReceiptService,
	dispatchService *service.DispatchService,
	loc *time.Location,
) *BillHandler {
	return &BillHandler{
		bills:           bills,
		statsService:    statsService,
		receiptService:  receiptService,
		dispatchService: dispatchService,
		loc:             loc,
	}
}

// List handles the front-desk bill listing: optional search term and
// optional calendar-date filter. Without a date filter only the five most
// recent matches come back.
func (h *BillHandler) List(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	query := service.DisplayQuery{Search: c.Query("search")}
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query.Date = &date
	}

	bills, err := h.bills.ListBills(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bills retrieved successfully", h.statsService.FilterForDisplay(bills, query))
}

// GetReceipt handles building the printable receipt for one bill.
func (h *BillHandler) GetReceipt(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	bill, err := h.bills.GetBill(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt built successfully", h.receiptService.Build(bill))
}

// DownloadPDF streams the staged PDF for a bill, if a dispatch has
// produced one.
func (h *BillHandler) DownloadPDF(c *gin.Context) {
	if _, ok := GetSession(c); !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	billID := c.Param("id")
	path := h.dispatchService.StagedPDFPath(billID)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c, "No staged PDF for this bill; run a dispatch first")
		return
	}

	c.FileAttachment(path, fmt.Sprintf("bill_%s.pdf", billID))
}
