package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/application/service"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/internal/presentation/http/dto/response"
	"github.com/kamande/caredesk-api/pkg/apperror"
)

// DispatchHandler drives the bill delivery workflow.
type DispatchHandler struct {
	bills           repository.BillSource
	dispatchService *service.DispatchService
	journal         repository.DispatchRepository
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(
	bills repository.BillSource,
	dispatchService *service.DispatchService,
	journal repository.DispatchRepository,
) *DispatchHandler {
	return &DispatchHandler{
		bills:           bills,
		dispatchService: dispatchService,
		journal:         journal,
	}
}

// Dispatch handles the full three-stage delivery for one bill. The
// response message is always the operator notice saying which stages
// succeeded and what manual step remains.
func (h *DispatchHandler) Dispatch(c *gin.Context) {
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

	result, err := h.dispatchService.Dispatch(c.Request.Context(), sess, bill)
	if err != nil {
		// A missing phone still carries the partial result so the
		// operator sees whether the PDF was staged.
		if errors.Is(err, apperror.ErrNoPhone) && result != nil {
			response.ErrorWithData(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, result.Notice, result)
}

// Notify handles the send-only variant: compose the chat link without
// generating or relaying a document.
func (h *DispatchHandler) Notify(c *gin.Context) {
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

	result, err := h.dispatchService.NotifyOnly(c.Request.Context(), sess, bill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result.Notice, result)
}

// History lists the dispatch journal for one bill.
func (h *DispatchHandler) History(c *gin.Context) {
	if _, ok := GetSession(c); !ok {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	records, err := h.journal.ListByBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dispatch history retrieved successfully", records)
}
