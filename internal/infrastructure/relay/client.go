// Package relay is the client for the backend message relay service.
package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/pkg/apperror"
)

// Client asks the backend to deliver a bill document through the
// integrated WhatsApp channel.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new relay client
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

var _ repository.MessageRelay = (*Client)(nil)

// Send requests server-side delivery for a bill. Only the status is
// observed; the relay returns no payload this API consumes.
func (c *Client) Send(ctx context.Context, billID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bills/"+billID+"/send", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", apperror.ErrRelayFailed, resp.StatusCode)
	}
	return nil
}
