// Package patients covers patient registration and search: the typed API
// client used by the CLI and the in-memory service/handler pair behind the
// sandbox server.
package patients

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient record.
type Patient struct {
	ID            uuid.UUID  `json:"id"`
	DNI           string     `json:"dni"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	ClinicalNotes *string    `json:"clinical_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RegisterInput is the payload for creating a patient.
type RegisterInput struct {
	DNI           string  `json:"dni"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	BirthDate     *string `json:"birth_date,omitempty"` // YYYY-MM-DD
	ClinicalNotes *string `json:"clinical_notes,omitempty"`
}

// New builds a normalized patient: trimmed fields, lower-cased email.
func New(dni, firstName, lastName, email string, phone *string, birthDate *time.Time, notes *string) Patient {
	return Patient{
		ID:            uuid.New(),
		DNI:           strings.TrimSpace(dni),
		FirstName:     strings.TrimSpace(firstName),
		LastName:      strings.TrimSpace(lastName),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Phone:         trimPtr(phone),
		BirthDate:     birthDate,
		ClinicalNotes: trimPtr(notes),
	}
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
