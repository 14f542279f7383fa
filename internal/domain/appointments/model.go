// Package appointments holds the appointment model, the typed API client the
// receptionist CLI uses, and the in-memory service/handler pair that backs
// the sandbox server.
package appointments

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kinesio/frontdesk/pkg/agenda"
)

// Status is the appointment lifecycle state. Cancelled is terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

// Appointment is a booked session for a patient with a kinesiologist.
// StartAt/EndAt are absolute UTC instants; start_at < end_at always holds.
type Appointment struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	KinesiologistID uuid.UUID `json:"kinesiologist_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Status          Status    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CancelledReason *string   `json:"cancelled_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateInput is the payload for booking a new appointment.
type CreateInput struct {
	PatientID       string  `json:"patient_id"`
	KinesiologistID string  `json:"kinesiologist_id"`
	StartAt         string  `json:"start_at"` // RFC3339
	EndAt           string  `json:"end_at"`   // RFC3339
	Notes           *string `json:"notes,omitempty"`
}

// UpdateInput is the PATCH payload; nil fields are left untouched.
type UpdateInput struct {
	StartAt         *string `json:"start_at,omitempty"`
	EndAt           *string `json:"end_at,omitempty"`
	Status          *string `json:"status,omitempty"`
	CancelledReason *string `json:"cancelled_reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AgendaEntries converts a day's appointments into grid-builder entries.
func AgendaEntries(appts []Appointment) []agenda.Entry {
	entries := make([]agenda.Entry, 0, len(appts))
	for _, a := range appts {
		e := agenda.Entry{
			ID:        a.ID.String(),
			PatientID: a.PatientID.String(),
			StartAt:   a.StartAt,
			EndAt:     a.EndAt,
			Cancelled: a.Status == StatusCancelled,
		}
		if a.Notes != nil {
			e.Notes = *a.Notes
		}
		entries = append(entries, e)
	}
	return entries
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
