// Package documents is the client for the external PDF rendering service.
package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/pkg/apperror"
)

// Client renders bill PDFs and produces the stable view links embedded in
// outbound messages.
type Client struct {
	baseURL       string
	viewURLFormat string
	http          *http.Client
}

// NewClient creates a new document rendering client. viewURLFormat must
// contain a single %s placeholder for the bill id.
func NewClient(baseURL, viewURLFormat string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, viewURLFormat: viewURLFormat, http: httpClient}
}

var _ repository.DocumentRenderer = (*Client)(nil)

// Render fetches the rendered PDF payload for a bill.
func (c *Client) Render(ctx context.Context, billID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bills/"+billID+"/pdf", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperror.ErrRenderFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrRenderFailed, err)
	}
	return payload, nil
}

// ViewURL returns the server-hosted view link for a bill.
func (c *Client) ViewURL(billID string) string {
	return fmt.Sprintf(c.viewURLFormat, billID)
}
