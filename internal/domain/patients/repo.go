package patients

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repo is an in-memory patient store for the sandbox server.
type Repo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Patient
}

// NewRepo creates an empty Repo.
func NewRepo() *Repo {
	return &Repo{items: make(map[uuid.UUID]*Patient)}
}

// Create stores a new patient.
func (r *Repo) Create(_ context.Context, p Patient) (Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := p
	r.items[p.ID] = &stored
	return stored, nil
}

// GetByID returns a patient and whether it exists.
func (r *Repo) GetByID(_ context.Context, id uuid.UUID) (Patient, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return Patient{}, false, nil
	}
	return *p, true, nil
}

// ExistsByDNI reports whether a patient with the given DNI is registered.
func (r *Repo) ExistsByDNI(_ context.Context, dni string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.DNI == dni {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByEmail reports whether a patient with the given email is registered.
func (r *Repo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Search matches the query case-insensitively against DNI, names and email,
// returning up to limit patients ordered by last name, first name.
func (r *Repo) Search(_ context.Context, query string, limit int) ([]Patient, error) {
	q := strings.ToLower(query)

	r.mu.RLock()
	matches := make([]Patient, 0)
	for _, p := range r.items {
		haystack := strings.ToLower(p.DNI + " " + p.FirstName + " " + p.LastName + " " + p.Email)
		if strings.Contains(haystack, q) {
			matches = append(matches, *p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].LastName != matches[j].LastName {
			return matches[i].LastName < matches[j].LastName
		}
		return matches[i].FirstName < matches[j].FirstName
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
