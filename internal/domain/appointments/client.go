package appointments

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kinesio/frontdesk/internal/platform/rest"
)

// Client is the typed appointment API client.
type Client struct {
	rest *rest.Client
}

// NewClient wraps a base REST client.
func NewClient(r *rest.Client) *Client {
	return &Client{rest: r}
}

// ListDay fetches every appointment for a kinesiologist on a YYYY-MM-DD date.
func (c *Client) ListDay(ctx context.Context, date, kinesiologistID string) ([]Appointment, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("kinesiologist_id", kinesiologistID)

	var out []Appointment
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/appointments", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPatient fetches a patient's appointments, optionally bounded by
// from/to dates (YYYY-MM-DD, either may be empty).
func (c *Client) ListByPatient(ctx context.Context, patientID, from, to string) ([]Appointment, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}

	var out []Appointment
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/appointments/patient", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single appointment by id.
func (c *Client) Get(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := c.rest.Do(ctx, http.MethodGet, "/api/v1/appointments/"+id, nil, nil, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Create books a new appointment. An overlapping range returns ErrOverlap.
func (c *Client) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	var out Appointment
	if err := c.rest.Do(ctx, http.MethodPost, "/api/v1/appointments", nil, in, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Update patches an appointment. Rescheduling into an occupied range returns
// ErrOverlap.
func (c *Client) Update(ctx context.Context, id string, in UpdateInput) (*Appointment, error) {
	var out Appointment
	if err := c.rest.Do(ctx, http.MethodPatch, "/api/v1/appointments/"+id, nil, in, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// Cancel marks an appointment cancelled with an optional reason.
func (c *Client) Cancel(ctx context.Context, id, reason string) (*Appointment, error) {
	status := string(StatusCancelled)
	in := UpdateInput{Status: &status}
	if reason != "" {
		in.CancelledReason = &reason
	}
	return c.Update(ctx, id, in)
}

// Reschedule moves an appointment to a new UTC range.
func (c *Client) Reschedule(ctx context.Context, id string, startAt, endAt time.Time) (*Appointment, error) {
	start := startAt.UTC().Format(time.RFC3339)
	end := endAt.UTC().Format(time.RFC3339)
	return c.Update(ctx, id, UpdateInput{StartAt: &start, EndAt: &end})
}

// mapError lifts transport-level status codes into domain errors so callers
// can branch with errors.Is.
func mapError(err error) error {
	switch rest.StatusOf(err) {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrOverlap, err.Error())
	case http.StatusNotFound:
		return fmt.Errorf("%w (%s)", ErrNotFound, err.Error())
	}
	return err
}
