package patients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// Service validates patient registration and search over the in-memory repo.
type Service struct {
	repo *Repo
}

// NewService creates a Service over the given repo.
func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Register creates a patient after validating required fields and DNI/email
// uniqueness.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Patient, map[string]string, error) {
	details := map[string]string{}

	in.DNI = strings.TrimSpace(in.DNI)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.DNI == "" {
		details["dni"] = "required"
	}
	if in.FirstName == "" {
		details["first_name"] = "required"
	}
	if in.LastName == "" {
		details["last_name"] = "required"
	}
	if in.Email == "" {
		details["email"] = "required"
	} else if !strings.Contains(in.Email, "@") {
		details["email"] = "invalid format"
	}
	for _, ch := range in.DNI {
		if ch < '0' || ch > '9' {
			details["dni"] = "must be numeric (no dots or dashes)"
			break
		}
	}

	var birthDate *time.Time
	if in.BirthDate != nil && strings.TrimSpace(*in.BirthDate) != "" {
		tm, err := time.Parse("2006-01-02", strings.TrimSpace(*in.BirthDate))
		if err != nil {
			details["birth_date"] = "invalid format (YYYY-MM-DD)"
		} else {
			utc := tm.UTC()
			birthDate = &utc
		}
	}
	if len(details) > 0 {
		return Patient{}, details, ErrValidation
	}

	exists, err := s.repo.ExistsByDNI(ctx, in.DNI)
	if err != nil {
		return Patient{}, nil, err
	}
	if exists {
		return Patient{}, nil, ErrDuplicateDNI
	}
	exists, err = s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return Patient{}, nil, err
	}
	if exists {
		return Patient{}, nil, ErrDuplicateEmail
	}

	p := New(in.DNI, in.FirstName, in.LastName, in.Email, in.Phone, birthDate, in.ClinicalNotes)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Patient{}, nil, err
	}
	return created, nil, nil
}

// Search trims the query and clamps the limit; an empty query returns an
// empty result rather than the whole registry.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Patient, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []Patient{}, nil
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	return s.repo.Search(ctx, q, limit)
}

// Get returns a patient by id.
func (s *Service) Get(ctx context.Context, id string) (Patient, error) {
	pid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Patient{}, ErrValidation
	}
	p, found, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		return Patient{}, err
	}
	if !found {
		return Patient{}, ErrNotFound
	}
	return p, nil
}
