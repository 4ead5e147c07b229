// Package billing is the read-only client for the remote billing service.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kamande/caredesk-api/internal/domain/entity"
	"github.com/kamande/caredesk-api/internal/domain/repository"
	"github.com/kamande/caredesk-api/pkg/apperror"
)

// Client fetches bills from the billing service on behalf of a front-desk
// operator. Calls are authorized with the operator's own session token,
// passed explicitly per request.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new billing client
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

var _ repository.BillSource = (*Client)(nil)

// ListBills returns the full bill set for the operator's hospital.
func (c *Client) ListBills(ctx context.Context, sess repository.Session) ([]entity.Bill, error) {
	var bills []entity.Bill
	if err := c.get(ctx, sess, c.baseURL+"/bills", &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// GetBill returns a single bill by id.
func (c *Client) GetBill(ctx context.Context, sess repository.Session, billID string) (*entity.Bill, error) {
	var bill entity.Bill
	if err := c.get(ctx, sess, c.baseURL+"/bills/"+billID, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *Client) get(ctx context.Context, sess repository.Session, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("billing service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NewNotFoundError("Bill")
	case resp.StatusCode == http.StatusUnauthorized:
		return apperror.ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("billing service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
