package patients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kinesio/frontdesk/internal/platform/rest"
)

// Client is the typed patient API client.
type Client struct {
	rest *rest.Client
}

// NewClient wraps a base REST client.
func NewClient(r *rest.Client) *Client {
	return &Client{rest: r}
}

// Search queries patients by DNI, name or email fragment.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Patient, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []Patient
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/patients/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new patient. Duplicate DNI/email come back as a 409
// whose message names the conflicting field.
func (c *Client) Create(ctx context.Context, in RegisterInput) (*Patient, error) {
	var out Patient
	if err := c.rest.Do(ctx, http.MethodPost, "/api/v1/patients", nil, in, &out); err != nil {
		if rest.IsConflict(err) {
			return nil, fmt.Errorf("patient already registered: %s", err.Error())
		}
		return nil, err
	}
	return &out, nil
}

// Get fetches a patient by id.
func (c *Client) Get(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/patients/"+id, nil, nil, &out); err != nil {
		if rest.IsNotFound(err) {
			return nil, fmt.Errorf("%w (%s)", ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}
