package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repo is an in-memory appointment store for the sandbox server.
type Repo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Appointment
}

// NewRepo creates an empty Repo.
func NewRepo() *Repo {
	return &Repo{items: make(map[uuid.UUID]*Appointment)}
}

// Create stores a new appointment.
func (r *Repo) Create(_ context.Context, a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := a
	r.items[a.ID] = &stored
	return stored, nil
}

// Update replaces an existing appointment.
func (r *Repo) Update(_ context.Context, a Appointment) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return Appointment{}, ErrNotFound
	}
	stored := a
	r.items[a.ID] = &stored
	return stored, nil
}

// GetByID returns an appointment and whether it exists.
func (r *Repo) GetByID(_ context.Context, id uuid.UUID) (Appointment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return Appointment{}, false, nil
	}
	return *a, true, nil
}

// ListByKinesiologistAndRange returns appointments for a kinesiologist whose
// start falls in [from, to), sorted by start time.
func (r *Repo) ListByKinesiologistAndRange(_ context.Context, kid uuid.UUID, from, to time.Time) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, 0)
	for _, a := range r.items {
		if a.KinesiologistID != kid {
			continue
		}
		if a.StartAt.Before(from) || !a.StartAt.Before(to) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// ListByPatientAndRange returns a patient's appointments whose start falls in
// [from, to), sorted by start time. Zero bounds are open.
func (r *Repo) ListByPatientAndRange(_ context.Context, pid uuid.UUID, from, to time.Time) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, 0)
	for _, a := range r.items {
		if a.PatientID != pid {
			continue
		}
		if !from.IsZero() && a.StartAt.Before(from) {
			continue
		}
		if !to.IsZero() && !a.StartAt.Before(to) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// HasOverlap reports whether a scheduled appointment for the kinesiologist
// intersects (start, end). exclude skips one appointment id, so an update can
// ignore itself. Ranges touching at a boundary do not overlap.
func (r *Repo) HasOverlap(_ context.Context, kid uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.KinesiologistID != kid || a.Status != StatusScheduled {
			continue
		}
		if exclude != nil && a.ID == *exclude {
			continue
		}
		if a.StartAt.Before(end) && start.Before(a.EndAt) {
			return true, nil
		}
	}
	return false, nil
}
