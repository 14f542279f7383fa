package appointments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates appointment mutations and enforces the overlap rule over
// the in-memory repo. Details maps field name to a human-readable problem and
// accompanies ErrValidation.
type Service struct {
	repo *Repo
}

// NewService creates a Service over the given repo.
func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Create books a new appointment after validating the input and checking for
// overlaps with the kinesiologist's scheduled appointments.
func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, map[string]string, error) {
	details := map[string]string{}

	pid, err := uuid.Parse(strings.TrimSpace(in.PatientID))
	if err != nil {
		details["patient_id"] = "invalid uuid"
	}
	kid, err := uuid.Parse(strings.TrimSpace(in.KinesiologistID))
	if err != nil {
		details["kinesiologist_id"] = "invalid uuid"
	}
	startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(in.StartAt))
	if err != nil {
		details["start_at"] = "invalid format (RFC3339)"
	}
	endAt, err := time.Parse(time.RFC3339, strings.TrimSpace(in.EndAt))
	if err != nil {
		details["end_at"] = "invalid format (RFC3339)"
	}
	if details["start_at"] == "" && details["end_at"] == "" && !endAt.After(startAt) {
		details["end_at"] = "must be after start_at"
	}
	if len(details) > 0 {
		return Appointment{}, details, ErrValidation
	}

	overlap, err := s.repo.HasOverlap(ctx, kid, startAt.UTC(), endAt.UTC(), nil)
	if err != nil {
		return Appointment{}, nil, err
	}
	if overlap {
		return Appointment{}, nil, ErrOverlap
	}

	now := time.Now().UTC()
	a := Appointment{
		ID:              uuid.New(),
		PatientID:       pid,
		KinesiologistID: kid,
		StartAt:         startAt.UTC(),
		EndAt:           endAt.UTC(),
		Status:          StatusScheduled,
		Notes:           trimPtr(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Appointment{}, nil, err
	}
	return created, nil, nil
}

// ListDay returns the kinesiologist's appointments for a YYYY-MM-DD date,
// interpreted as [00:00, 24:00) UTC.
func (s *Service) ListDay(ctx context.Context, kinesiologistID, date string) ([]Appointment, map[string]string, error) {
	details := map[string]string{}

	kid, err := uuid.Parse(strings.TrimSpace(kinesiologistID))
	if err != nil {
		details["kinesiologist_id"] = "invalid uuid"
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		details["date"] = "invalid format (YYYY-MM-DD)"
	}
	if len(details) > 0 {
		return nil, details, ErrValidation
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return wrapList(s.repo.ListByKinesiologistAndRange(ctx, kid, from, from.Add(24*time.Hour)))
}

// ListByPatient returns a patient's appointments between optional from/to
// dates (YYYY-MM-DD).
func (s *Service) ListByPatient(ctx context.Context, patientID, from, to string) ([]Appointment, map[string]string, error) {
	details := map[string]string{}

	pid, err := uuid.Parse(strings.TrimSpace(patientID))
	if err != nil {
		details["patient_id"] = "invalid uuid"
	}
	fromAt, toAt := parseRange(from, to, details)
	if len(details) > 0 {
		return nil, details, ErrValidation
	}

	return wrapList(s.repo.ListByPatientAndRange(ctx, pid, fromAt, toAt))
}

// Get returns an appointment by id.
func (s *Service) Get(ctx context.Context, id string) (Appointment, error) {
	aid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, ErrValidation
	}
	a, found, err := s.repo.GetByID(ctx, aid)
	if err != nil {
		return Appointment{}, err
	}
	if !found {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

// Update applies a PATCH: status change, notes, cancellation reason and/or a
// reschedule. A cancelled appointment cannot return to scheduled, and a
// reschedule re-runs the overlap check excluding the appointment itself.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, map[string]string, error) {
	details := map[string]string{}

	aid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		details["id"] = "invalid uuid"
		return Appointment{}, details, ErrValidation
	}

	current, found, err := s.repo.GetByID(ctx, aid)
	if err != nil {
		return Appointment{}, nil, err
	}
	if !found {
		return Appointment{}, nil, ErrNotFound
	}

	if in.Status != nil {
		next := Status(strings.TrimSpace(*in.Status))
		switch next {
		case StatusScheduled, StatusCancelled:
			if current.Status == StatusCancelled && next == StatusScheduled {
				details["status"] = "cancelled appointments cannot be rescheduled back"
			} else {
				current.Status = next
			}
		default:
			details["status"] = "invalid value (scheduled|cancelled)"
		}
	}
	if in.Notes != nil {
		current.Notes = trimPtr(in.Notes)
	}
	if in.CancelledReason != nil {
		current.CancelledReason = trimPtr(in.CancelledReason)
	}

	newStart, newEnd := current.StartAt, current.EndAt
	if in.StartAt != nil {
		tm, e := time.Parse(time.RFC3339, strings.TrimSpace(*in.StartAt))
		if e != nil {
			details["start_at"] = "invalid format (RFC3339)"
		} else {
			newStart = tm.UTC()
		}
	}
	if in.EndAt != nil {
		tm, e := time.Parse(time.RFC3339, strings.TrimSpace(*in.EndAt))
		if e != nil {
			details["end_at"] = "invalid format (RFC3339)"
		} else {
			newEnd = tm.UTC()
		}
	}
	if (in.StartAt != nil || in.EndAt != nil) && !newEnd.After(newStart) {
		details["end_at"] = "must be after start_at"
	}
	if len(details) > 0 {
		return Appointment{}, details, ErrValidation
	}

	if in.StartAt != nil || in.EndAt != nil {
		exclude := current.ID
		overlap, err := s.repo.HasOverlap(ctx, current.KinesiologistID, newStart, newEnd, &exclude)
		if err != nil {
			return Appointment{}, nil, err
		}
		if overlap {
			return Appointment{}, nil, ErrOverlap
		}
		current.StartAt = newStart
		current.EndAt = newEnd
	}

	current.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return Appointment{}, nil, err
	}
	return updated, nil, nil
}

func parseRange(from, to string, details map[string]string) (time.Time, time.Time) {
	var fromAt, toAt time.Time
	if v := strings.TrimSpace(from); v != "" {
		tm, err := time.Parse("2006-01-02", v)
		if err != nil {
			details["from"] = "invalid format (YYYY-MM-DD)"
		} else {
			fromAt = tm.UTC()
		}
	}
	if v := strings.TrimSpace(to); v != "" {
		tm, err := time.Parse("2006-01-02", v)
		if err != nil {
			details["to"] = "invalid format (YYYY-MM-DD)"
		} else {
			toAt = tm.UTC().Add(24 * time.Hour)
		}
	}
	return fromAt, toAt
}

func wrapList(items []Appointment, err error) ([]Appointment, map[string]string, error) {
	if err != nil {
		return nil, nil, err
	}
	return items, nil, nil
}
