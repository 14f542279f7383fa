package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validCreateInput(kid uuid.UUID) CreateInput {
	return CreateInput{
		PatientID:       uuid.New().String(),
		KinesiologistID: kid.String(),
		StartAt:         "2025-12-15T14:00:00Z",
		EndAt:           "2025-12-15T14:45:00Z",
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	created, details, err := svc.Create(context.Background(), validCreateInput(kid))
	if err != nil {
		t.Fatalf("unexpected error: %v (details %v)", err, details)
	}
	if created.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", created.Status)
	}
	if !created.EndAt.After(created.StartAt) {
		t.Error("end must be after start")
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated id")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(NewRepo())

	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"bad patient id", CreateInput{PatientID: "nope", KinesiologistID: uuid.New().String(), StartAt: "2025-12-15T14:00:00Z", EndAt: "2025-12-15T15:00:00Z"}, "patient_id"},
		{"bad start", CreateInput{PatientID: uuid.New().String(), KinesiologistID: uuid.New().String(), StartAt: "mañana", EndAt: "2025-12-15T15:00:00Z"}, "start_at"},
		{"end before start", CreateInput{PatientID: uuid.New().String(), KinesiologistID: uuid.New().String(), StartAt: "2025-12-15T15:00:00Z", EndAt: "2025-12-15T14:00:00Z"}, "end_at"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, details, err := svc.Create(context.Background(), c.in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if details[c.field] == "" {
				t.Errorf("expected detail for %q, got %v", c.field, details)
			}
		})
	}
}

func TestService_Create_Overlap(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	if _, _, err := svc.Create(context.Background(), validCreateInput(kid)); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	in := validCreateInput(kid)
	in.StartAt = "2025-12-15T14:30:00Z"
	in.EndAt = "2025-12-15T15:15:00Z"
	_, _, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestService_Create_AdjacentRangesDoNotOverlap(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	if _, _, err := svc.Create(context.Background(), validCreateInput(kid)); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	in := validCreateInput(kid)
	in.StartAt = "2025-12-15T14:45:00Z"
	in.EndAt = "2025-12-15T15:30:00Z"
	if _, _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("back-to-back appointment rejected: %v", err)
	}
}

func TestService_Create_OverlapIgnoresCancelled(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	created, _, err := svc.Create(context.Background(), validCreateInput(kid))
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	status := string(StatusCancelled)
	if _, _, err := svc.Update(context.Background(), created.ID.String(), UpdateInput{Status: &status}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// Same range again: the cancelled appointment frees it.
	if _, _, err := svc.Create(context.Background(), validCreateInput(kid)); err != nil {
		t.Fatalf("expected cancelled slot to be bookable, got %v", err)
	}
}

func TestService_Create_OtherKinesiologistUnaffected(t *testing.T) {
	svc := NewService(NewRepo())

	if _, _, err := svc.Create(context.Background(), validCreateInput(uuid.New())); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if _, _, err := svc.Create(context.Background(), validCreateInput(uuid.New())); err != nil {
		t.Fatalf("same range with another kinesiologist rejected: %v", err)
	}
}

func TestService_ListDay(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	in := validCreateInput(kid)
	if _, _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := validCreateInput(kid)
	other.StartAt = "2025-12-16T09:00:00Z"
	other.EndAt = "2025-12-16T09:45:00Z"
	if _, _, err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, _, err := svc.ListDay(context.Background(), kid.String(), "2025-12-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 appointment on 2025-12-15, got %d", len(items))
	}

	_, details, err := svc.ListDay(context.Background(), kid.String(), "15/12/2025")
	if !errors.Is(err, ErrValidation) || details["date"] == "" {
		t.Errorf("expected date validation error, got %v %v", err, details)
	}
}

func TestService_Update_Reschedule(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	created, _, err := svc.Create(context.Background(), validCreateInput(kid))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	start := "2025-12-15T16:00:00Z"
	end := "2025-12-15T16:45:00Z"
	updated, _, err := svc.Update(context.Background(), created.ID.String(), UpdateInput{StartAt: &start, EndAt: &end})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if updated.StartAt.Format(time.RFC3339) != start {
		t.Errorf("start = %v, want %v", updated.StartAt, start)
	}
}

func TestService_Update_RescheduleExcludesSelf(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	created, _, err := svc.Create(context.Background(), validCreateInput(kid))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Moving within its own range must not conflict with itself.
	start := "2025-12-15T14:15:00Z"
	end := "2025-12-15T15:00:00Z"
	if _, _, err := svc.Update(context.Background(), created.ID.String(), UpdateInput{StartAt: &start, EndAt: &end}); err != nil {
		t.Fatalf("self-overlapping reschedule rejected: %v", err)
	}
}

func TestService_Update_RescheduleOverlap(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()

	if _, _, err := svc.Create(context.Background(), validCreateInput(kid)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second := validCreateInput(kid)
	second.StartAt = "2025-12-15T16:00:00Z"
	second.EndAt = "2025-12-15T16:45:00Z"
	b, _, err := svc.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	start := "2025-12-15T14:30:00Z"
	end := "2025-12-15T15:15:00Z"
	_, _, err = svc.Update(context.Background(), b.ID.String(), UpdateInput{StartAt: &start, EndAt: &end})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestService_Update_CancelIsTerminal(t *testing.T) {
	svc := NewService(NewRepo())
	created, _, err := svc.Create(context.Background(), validCreateInput(uuid.New()))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cancelled := string(StatusCancelled)
	reason := "patient called"
	updated, _, err := svc.Update(context.Background(), created.ID.String(), UpdateInput{Status: &cancelled, CancelledReason: &reason})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}
	if updated.CancelledReason == nil || *updated.CancelledReason != reason {
		t.Errorf("cancelled_reason = %v, want %q", updated.CancelledReason, reason)
	}

	scheduled := string(StatusScheduled)
	_, details, err := svc.Update(context.Background(), created.ID.String(), UpdateInput{Status: &scheduled})
	if !errors.Is(err, ErrValidation) || details["status"] == "" {
		t.Errorf("expected terminal-status validation error, got %v %v", err, details)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(NewRepo())
	note := "x"
	_, _, err := svc.Update(context.Background(), uuid.New().String(), UpdateInput{Notes: &note})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Get(t *testing.T) {
	svc := NewService(NewRepo())
	created, _, err := svc.Create(context.Background(), validCreateInput(uuid.New()))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id = %v, want %v", got.ID, created.ID)
	}

	if _, err := svc.Get(context.Background(), uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "not-a-uuid"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestService_ListByPatient(t *testing.T) {
	svc := NewService(NewRepo())
	kid := uuid.New()
	pid := uuid.New()

	in := validCreateInput(kid)
	in.PatientID = pid.String()
	if _, _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, _, err := svc.ListByPatient(context.Background(), pid.String(), "2025-12-01", "2025-12-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(items))
	}

	items, _, err = svc.ListByPatient(context.Background(), pid.String(), "2026-01-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no appointments after 2026-01-01, got %d", len(items))
	}
}
