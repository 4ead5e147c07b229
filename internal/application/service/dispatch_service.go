package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/internal/domain/enum"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/pkg/apperror"
	"github.com/kamande/caredesk-api/pkg/metrics"
	"github.com/kamande/caredesk-api/pkg/whatsapp"
)

// Message templates for the chat composer. The full template carries the
// server-hosted view link; the notify variant does not.
const (
	fullMessageTemplate   = "Dear %s, your bill for the consultation with %s is ready. View it here: %s"
	notifyMessageTemplate = "Dear %s, your bill for the consultation with %s is ready for collection at the front desk."
)

// Operator notices. Every dispatch ends with one of these so the front
// desk knows which manual step, if any, remains.
const (
	noticeNoPhone     = "This patient has no phone number on record. Download the PDF and share it another way."
	noticeRelayOK     = "Bill relayed via WhatsApp. The PDF cannot be auto-attached to the chat window; drag and drop the downloaded file there if needed."
	noticeRelayFailed = "Automatic WhatsApp send failed. Use the chat window and drag and drop the downloaded PDF manually."
	noticeNotifyOnly  = "Chat message composed. No document was generated or sent."
)

// DispatchResult reports which stages of a dispatch succeeded.
type DispatchResult struct {
	BillID       string `json:"bill_id"`
	PDFStaged    bool   `json:"pdf_staged"`
	PDFPath      string `json:"pdf_path,omitempty"`
	PDFError     string `json:"pdf_error,omitempty"`
	LinkComposed bool   `json:"link_composed"`
	ChatURL      string `json:"chat_url,omitempty"`
	RelaySent    bool   `json:"relay_sent"`
	RelayError   string `json:"relay_error,omitempty"`
	Notice       string `json:"notice"`
}

// DispatchService drives the three-stage bill delivery workflow: render
// and stage the PDF, compose the chat deep link, ask the backend relay to
// send. The stages hit three independently failing systems, so each is
// isolated: a failure is recorded on the result and the workflow moves on.
type DispatchService struct {
	renderer repository.DocumentRenderer
	relay    repository.MessageRelay
	journal  repository.DispatchRepository

	storagePath   string
	retryAttempts int
	retryBackoff  time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	renderer repository.DocumentRenderer,
	relay repository.MessageRelay,
	journal repository.DispatchRepository,
	storagePath string,
	retryAttempts int,
	retryBackoff time.Duration,
) *DispatchService {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &DispatchService{
		renderer:      renderer,
		relay:         relay,
		journal:       journal,
		storagePath:   storagePath,
		retryAttempts: retryAttempts,
		retryBackoff:  retryBackoff,
		inFlight:      make(map[string]struct{}),
	}
}

// Dispatch runs the full workflow for one bill. Overlapping dispatches
// for the same bill are rejected with apperror.ErrDispatchInFlight; a
// patient without a phone number stops the workflow after the PDF stage
// with apperror.ErrNoPhone, the partial result still describing what ran.
func (s *DispatchService) Dispatch(ctx context.Context, sess repository.Session, bill *entity.Bill) (*DispatchResult, error) {
	if !s.acquire(bill.ID) {
		metrics.DispatchRejectedTotal.Inc()
		return nil, apperror.ErrDispatchInFlight
	}
	defer s.release(bill.ID)

	result := &DispatchResult{BillID: bill.ID}

	s.stagePDF(ctx, bill.ID, result)

	if strings.TrimSpace(bill.Patient.Phone) == "" {
		result.Notice = noticeNoPhone
		metrics.DispatchStageTotal.WithLabelValues(metrics.StageLink, metrics.OutcomeSkipped).Inc()
		metrics.DispatchStageTotal.WithLabelValues(metrics.StageRelay, metrics.OutcomeSkipped).Inc()
		s.journalResult(ctx, sess, enum.DispatchKindFull, result)
		return result, apperror.ErrNoPhone
	}

	s.composeLink(bill, fullMessageTemplate, s.renderer.ViewURL(bill.ID), result)
	s.sendRelay(ctx, bill.ID, result)

	s.journalResult(ctx, sess, enum.DispatchKindFull, result)
	return result, nil
}

// NotifyOnly composes just the chat deep link with the short template:
// no PDF acquisition, no server relay.
func (s *DispatchService) NotifyOnly(ctx context.Context, sess repository.Session, bill *entity.Bill) (*DispatchResult, error) {
	if strings.TrimSpace(bill.Patient.Phone) == "" {
		return nil, apperror.ErrNoPhone
	}

	result := &DispatchResult{BillID: bill.ID, Notice: noticeNotifyOnly}
	s.composeLink(bill, notifyMessageTemplate, "", result)

	s.journalResult(ctx, sess, enum.DispatchKindNotify, result)
	return result, nil
}

// StagedPDFPath returns the deterministic path the rendered PDF is staged
// at for a bill.
func (s *DispatchService) StagedPDFPath(billID string) string {
	return filepath.Join(s.storagePath, fmt.Sprintf("bill_%s.pdf", billID))
}

// stagePDF runs stage one. Failure is recoverable: it is logged, recorded
// on the result and the workflow continues.
func (s *DispatchService) stagePDF(ctx context.Context, billID string, result *DispatchResult) {
	var payload []byte
	err := s.withRetry(ctx, "documents", func() error {
		var renderErr error
		payload, renderErr = s.renderer.Render(ctx, billID)
		return renderErr
	})
	if err == nil {
		path := s.StagedPDFPath(billID)
		if mkErr := os.MkdirAll(s.storagePath, 0o755); mkErr != nil {
			err = mkErr
		} else if writeErr := os.WriteFile(path, payload, 0o644); writeErr != nil {
			err = writeErr
		} else {
			result.PDFStaged = true
			result.PDFPath = path
		}
	}
	if err != nil {
		result.PDFError = err.Error()
		slog.Warn("PDF acquisition failed, continuing dispatch", "bill_id", billID, "error", err)
		metrics.DispatchStageTotal.WithLabelValues(metrics.StageRender, metrics.OutcomeFailed).Inc()
		return
	}
	metrics.DispatchStageTotal.WithLabelValues(metrics.StageRender, metrics.OutcomeOK).Inc()
}

// composeLink runs stage two: normalize the phone number and build the
// pre-filled chat composer URL. viewURL may be empty for the short
// template, which takes no link argument.
func (s *DispatchService) composeLink(bill *entity.Bill, template, viewURL string, result *DispatchResult) {
	phone := whatsapp.NormalizePhone(bill.Patient.Phone)

	var message string
	if viewURL != "" {
		message = fmt.Sprintf(template, bill.Patient.Name, bill.Doctor.Name, viewURL)
	} else {
		message = fmt.Sprintf(template, bill.Patient.Name, bill.Doctor.Name)
	}

	result.ChatURL = whatsapp.ComposeURL(phone, message)
	result.LinkComposed = true
	metrics.DispatchStageTotal.WithLabelValues(metrics.StageLink, metrics.OutcomeOK).Inc()
}

// sendRelay runs stage three, independent of whether the chat window from
// stage two is ever opened. Either way the notice tells the operator that
// auto-attaching into that window is impossible and drag-and-drop of the
// staged download may still be needed.
func (s *DispatchService) sendRelay(ctx context.Context, billID string, result *DispatchResult) {
	err := s.withRetry(ctx, "relay", func() error {
		return s.relay.Send(ctx, billID)
	})
	if err != nil {
		result.RelayError = err.Error()
		result.Notice = noticeRelayFailed
		slog.Warn("message relay failed", "bill_id", billID, "error", err)
		metrics.DispatchStageTotal.WithLabelValues(metrics.StageRelay, metrics.OutcomeFailed).Inc()
		return
	}
	result.RelaySent = true
	result.Notice = noticeRelayOK
	metrics.DispatchStageTotal.WithLabelValues(metrics.StageRelay, metrics.OutcomeOK).Inc()
}

// withRetry retries transient upstream failures with doubling backoff,
// honoring context cancellation between attempts.
func (s *DispatchService) withRetry(ctx context.Context, serviceName string, call func() error) error {
	backoff := s.retryBackoff
	var err error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			metrics.UpstreamRetriesTotal.WithLabelValues(serviceName).Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if err = call(); err == nil {
			return nil
		}
	}
	return err
}

// journalResult writes the audit record. Journal failures never affect
// the dispatch outcome.
func (s *DispatchService) journalResult(ctx context.Context, sess repository.Session, kind enum.DispatchKind, result *DispatchResult) {
	if s.journal == nil {
		return
	}
	record := &entity.DispatchRecord{
		BillID:       result.BillID,
		OperatorID:   sess.OperatorID,
		Kind:         kind,
		PDFStaged:    result.PDFStaged,
		PDFError:     result.PDFError,
		LinkComposed: result.LinkComposed,
		ChatURL:      result.ChatURL,
		RelaySent:    result.RelaySent,
		RelayError:   result.RelayError,
		Notice:       result.Notice,
	}
	if err := s.journal.Create(ctx, record); err != nil {
		slog.Error("failed to journal dispatch", "bill_id", result.BillID, "error", err)
	}
}

func (s *DispatchService) acquire(billID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.inFlight[billID]; taken {
		return false
	}
	s.inFlight[billID] = struct{}{}
	return true
}

func (s *DispatchService) release(billID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, billID)
}
