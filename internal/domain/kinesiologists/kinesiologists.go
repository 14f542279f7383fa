// Package kinesiologists lists the clinic's practitioners: the typed API
// client for the CLI plus the in-memory repo/handler behind the sandbox.
package kinesiologists

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kinesio/frontdesk/internal/platform/rest"
)

// Kinesiologist is a practitioner who can be booked for appointments.
type Kinesiologist struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	LicenseNumber *string   `json:"license_number,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName renders "Last, First" for selection lists.
func (k Kinesiologist) DisplayName() string {
	return k.LastName + ", " + k.FirstName
}

// -- Repo --

// Repo is an in-memory practitioner store for the sandbox server.
type Repo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Kinesiologist
}

// NewRepo creates an empty Repo.
func NewRepo() *Repo {
	return &Repo{items: make(map[uuid.UUID]*Kinesiologist)}
}

// Add stores a practitioner.
func (r *Repo) Add(k Kinesiologist) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := k
	r.items[k.ID] = &stored
}

// List returns practitioners ordered by last name. When onlyActive is true
// inactive practitioners are filtered out.
func (r *Repo) List(_ context.Context, onlyActive bool) ([]Kinesiologist, error) {
	r.mu.RLock()
	out := make([]Kinesiologist, 0, len(r.items))
	for _, k := range r.items {
		if onlyActive && !k.Active {
			continue
		}
		out = append(out, *k)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

// -- Handler --

// Handler exposes GET /kinesiologists on the sandbox API.
type Handler struct {
	repo *Repo
}

// NewHandler creates a Handler over the repo.
func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes binds the kinesiologist routes to an API group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/kinesiologists", h.List)
}

// List handles GET /kinesiologists?active=true|false (active only by default).
func (h *Handler) List(c echo.Context) error {
	onlyActive := true
	if v := strings.TrimSpace(c.QueryParam("active")); v != "" {
		onlyActive = strings.EqualFold(v, "true")
	}

	items, err := h.repo.List(c.Request().Context(), onlyActive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}
	return c.JSON(http.StatusOK, items)
}

// -- Client --

// Client is the typed kinesiologist API client.
type Client struct {
	rest *rest.Client
}

// NewClient wraps a base REST client.
func NewClient(r *rest.Client) *Client {
	return &Client{rest: r}
}

// List fetches the active practitioners.
func (c *Client) List(ctx context.Context) ([]Kinesiologist, error) {
	var out []Kinesiologist
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/kinesiologists", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll fetches every practitioner including inactive ones.
func (c *Client) ListAll(ctx context.Context) ([]Kinesiologist, error) {
	q := url.Values{"active": []string{"false"}}
	var out []Kinesiologist
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/kinesiologists", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
