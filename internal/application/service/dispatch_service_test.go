package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Fakes --

type fakeRenderer struct {
	mu       sync.Mutex
	calls    int
	failures int // fail this many calls before succeeding; -1 fails forever
	payload  []byte
	block    chan struct{} // when set, Render blocks until closed
	started  chan struct{} // closed on first Render call when set
}

func (f *fakeRenderer) Render(ctx context.Context, billID string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	calls := f.calls
	f.mu.Unlock()

	if f.started != nil && calls == 1 {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.failures < 0 || calls <= f.failures {
		return nil, errors.New("render backend down")
	}
	return f.payload, nil
}

func (f *fakeRenderer) ViewURL(billID string) string {
	return "https://portal.example.com/bills/" + billID + "/view"
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRelay struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (f *fakeRelay) Send(ctx context.Context, billID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures < 0 || f.calls <= f.failures {
		return apperror.ErrRelayFailed
	}
	return nil
}

func (f *fakeRelay) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeJournal struct {
	mu      sync.Mutex
	records []*entity.DispatchRecord
}

func (f *fakeJournal) Create(ctx context.Context, record *entity.DispatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeJournal) ListByBill(ctx context.Context, billID string) ([]entity.DispatchRecord, error) {
	return nil, nil
}

// -- Helpers --

func dispatchBill(phone string) *entity.Bill {
	return &entity.Bill{
		ID:        "65f2c1a9e4b0d83a1b9cdef0",
		CreatedAt: time.Now(),
		Amount:    1999,
		Patient:   entity.Patient{Name: "Asha Verma", MRN: "MRN-100", Phone: phone},
		Doctor:    entity.Doctor{Name: "Dr. Rao"},
	}
}

func testSession() repository.Session {
	return repository.Session{OperatorID: uuid.New(), Token: "token"}
}

func newTestService(t *testing.T, renderer *fakeRenderer, relay *fakeRelay, journal *fakeJournal) *DispatchService {
	t.Helper()
	return NewDispatchService(renderer, relay, journal, t.TempDir(), 3, time.Millisecond)
}

// -- Tests --

func TestDispatch_AllStagesSucceed(t *testing.T) {
	renderer := &fakeRenderer{payload: []byte("%PDF-1.4 test")}
	relay := &fakeRelay{}
	journal := &fakeJournal{}
	svc := newTestService(t, renderer, relay, journal)

	bill := dispatchBill("9876543210")
	result, err := svc.Dispatch(context.Background(), testSession(), bill)

	require.NoError(t, err)
	assert.True(t, result.PDFStaged)
	assert.True(t, result.LinkComposed)
	assert.True(t, result.RelaySent)
	assert.Equal(t, noticeRelayOK, result.Notice)

	// Staged under the deterministic filename.
	assert.Equal(t, svc.StagedPDFPath(bill.ID), result.PDFPath)
	payload, readErr := os.ReadFile(result.PDFPath)
	require.NoError(t, readErr)
	assert.Equal(t, []byte("%PDF-1.4 test"), payload)

	// Ten-digit phone gets the country prefix in the composer link.
	assert.Contains(t, result.ChatURL, "wa.me/919876543210")
	assert.Contains(t, result.ChatURL, "text=")

	require.Len(t, journal.records, 1)
	assert.True(t, journal.records[0].RelaySent)
}

func TestDispatch_RenderFailureDoesNotBlockLaterStages(t *testing.T) {
	renderer := &fakeRenderer{failures: -1}
	relay := &fakeRelay{}
	journal := &fakeJournal{}
	svc := newTestService(t, renderer, relay, journal)

	result, err := svc.Dispatch(context.Background(), testSession(), dispatchBill("9876543210"))

	require.NoError(t, err)
	assert.False(t, result.PDFStaged)
	assert.NotEmpty(t, result.PDFError)

	// Stages two and three still ran: the chat link exists, the relay
	// succeeded, and the notice still demands the manual drag-and-drop.
	assert.True(t, result.LinkComposed)
	assert.Contains(t, result.ChatURL, "wa.me/919876543210")
	assert.True(t, result.RelaySent)
	assert.Equal(t, noticeRelayOK, result.Notice)
	assert.Equal(t, 1, relay.callCount())
}

func TestDispatch_RelayFailureProducesFallbackNotice(t *testing.T) {
	renderer := &fakeRenderer{payload: []byte("pdf")}
	relay := &fakeRelay{failures: -1}
	journal := &fakeJournal{}
	svc := newTestService(t, renderer, relay, journal)

	result, err := svc.Dispatch(context.Background(), testSession(), dispatchBill("9876543210"))

	require.NoError(t, err)
	assert.True(t, result.PDFStaged)
	assert.True(t, result.LinkComposed)
	assert.False(t, result.RelaySent)
	assert.NotEmpty(t, result.RelayError)
	assert.Equal(t, noticeRelayFailed, result.Notice)
}

func TestDispatch_NoPhoneStopsAfterPDFStage(t *testing.T) {
	renderer := &fakeRenderer{payload: []byte("pdf")}
	relay := &fakeRelay{}
	journal := &fakeJournal{}
	svc := newTestService(t, renderer, relay, journal)

	result, err := svc.Dispatch(context.Background(), testSession(), dispatchBill(""))

	require.ErrorIs(t, err, apperror.ErrNoPhone)
	require.NotNil(t, result)
	assert.True(t, result.PDFStaged)
	assert.False(t, result.LinkComposed)
	assert.Empty(t, result.ChatURL)
	assert.False(t, result.RelaySent)
	assert.Equal(t, noticeNoPhone, result.Notice)

	// Neither the chat surface nor the relay was touched.
	assert.Equal(t, 0, relay.callCount())
	require.Len(t, journal.records, 1)
}

func TestDispatch_RetriesTransientRenderFailures(t *testing.T) {
	renderer := &fakeRenderer{failures: 2, payload: []byte("pdf")}
	relay := &fakeRelay{}
	svc := newTestService(t, renderer, relay, &fakeJournal{})

	result, err := svc.Dispatch(context.Background(), testSession(), dispatchBill("9876543210"))

	require.NoError(t, err)
	assert.True(t, result.PDFStaged)
	assert.Equal(t, 3, renderer.callCount())
}

func TestDispatch_RejectsOverlappingDispatchForSameBill(t *testing.T) {
	renderer := &fakeRenderer{
		payload: []byte("pdf"),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	relay := &fakeRelay{}
	svc := newTestService(t, renderer, relay, &fakeJournal{})
	bill := dispatchBill("9876543210")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Dispatch(context.Background(), testSession(), bill)
	}()

	<-renderer.started
	_, err := svc.Dispatch(context.Background(), testSession(), bill)
	assert.ErrorIs(t, err, apperror.ErrDispatchInFlight)

	close(renderer.block)
	<-done

	// Once the first dispatch finishes the guard is released.
	_, err = svc.Dispatch(context.Background(), testSession(), bill)
	assert.NoError(t, err)
}

func TestNotifyOnly(t *testing.T) {
	renderer := &fakeRenderer{payload: []byte("pdf")}
	relay := &fakeRelay{}
	journal := &fakeJournal{}
	svc := newTestService(t, renderer, relay, journal)

	result, err := svc.NotifyOnly(context.Background(), testSession(), dispatchBill("+91 98765 43210"))

	require.NoError(t, err)
	assert.True(t, result.LinkComposed)
	assert.Contains(t, result.ChatURL, "wa.me/919876543210")
	// Short template: no document link in the message.
	assert.False(t, strings.Contains(result.ChatURL, "portal.example.com"))
	assert.Equal(t, noticeNotifyOnly, result.Notice)

	// No document was generated and nothing was relayed.
	assert.False(t, result.PDFStaged)
	assert.Equal(t, 0, renderer.callCount())
	assert.Equal(t, 0, relay.callCount())
	require.Len(t, journal.records, 1)
}

func TestNotifyOnly_NoPhone(t *testing.T) {
	svc := newTestService(t, &fakeRenderer{}, &fakeRelay{}, &fakeJournal{})

	result, err := svc.NotifyOnly(context.Background(), testSession(), dispatchBill("  "))

	assert.ErrorIs(t, err, apperror.ErrNoPhone)
	assert.Nil(t, result)
}
