// Package sandbox generates reproducible synthetic clinic data for the local
// demo server: kinesiologists, patients, and a few days of appointments.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kinesio/frontdesk/internal/domain/appointments"
	"github.com/kinesio/frontdesk/internal/domain/kinesiologists"
	"github.com/kinesio/frontdesk/internal/domain/patients"
	"github.com/kinesio/frontdesk/pkg/agenda"
)

// SeedConfig controls the volume and shape of generated demo data.
type SeedConfig struct {
	KinesiologistCount int
	PatientCount       int
	AppointmentsPerDay int
	Days               int
	IncludeCancelled   bool
	Seed               int64
}

// DefaultSeedConfig returns the volumes used by the demo server.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		KinesiologistCount: 3,
		PatientCount:       12,
		AppointmentsPerDay: 8,
		Days:               3,
		IncludeCancelled:   true,
		Seed:               42,
	}
}

// Stores groups the repositories the seeder populates.
type Stores struct {
	Kinesiologists *kinesiologists.Repo
	Patients       *patients.Repo
	Appointments   *appointments.Repo
}

var (
	firstNames = []string{"Lucia", "Martin", "Paula", "Diego", "Elena", "Bruno", "Carla", "Tomas", "Ines", "Facundo", "Sofia", "Nicolas"}
	lastNames  = []string{"Gomez", "Fernandez", "Acosta", "Suarez", "Rivas", "Pereyra", "Molina", "Dominguez", "Castro", "Luna", "Vega", "Ibanez"}
	noteBank   = []string{"post-surgery knee rehab", "lower back pain", "shoulder mobility", "ankle sprain follow-up", "chronic neck tension", "ACL recovery program"}
)

// Seed fills the stores with deterministic demo data. The same config always
// produces the same records, so demos and tests can rely on the fixture.
func Seed(ctx context.Context, stores Stores, cfg SeedConfig, logger zerolog.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	now := time.Now().UTC()

	kins := make([]kinesiologists.Kinesiologist, 0, cfg.KinesiologistCount)
	for i := 0; i < cfg.KinesiologistCount; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[i%len(lastNames)]
		lic := fmt.Sprintf("KIN-%04d", 1000+rng.Intn(9000))
		k := kinesiologists.Kinesiologist{
			ID:            uuid.New(),
			FirstName:     first,
			LastName:      last,
			Email:         fmt.Sprintf("%s.%s@clinic.test", strings.ToLower(first), strings.ToLower(last)),
			LicenseNumber: &lic,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		stores.Kinesiologists.Add(k)
		kins = append(kins, k)
	}

	pats := make([]patients.Patient, 0, cfg.PatientCount)
	for i := 0; i < cfg.PatientCount; i++ {
		first := firstNames[(i+3)%len(firstNames)]
		last := lastNames[rng.Intn(len(lastNames))]
		dni := fmt.Sprintf("%08d", 20000000+rng.Intn(30000000))
		email := fmt.Sprintf("%s.%s.%d@mail.test", strings.ToLower(first), strings.ToLower(last), i)
		rec := patients.New(dni, first, last, email, nil, nil, nil)
		rec.CreatedAt = now
		rec.UpdatedAt = now
		p, err := stores.Patients.Create(ctx, rec)
		if err != nil {
			return fmt.Errorf("seed patient %s: %w", dni, err)
		}
		pats = append(pats, p)
	}

	created := 0
	for day := 0; day < cfg.Days; day++ {
		date := now.AddDate(0, 0, day).Format("2006-01-02")
		for i := 0; i < cfg.AppointmentsPerDay; i++ {
			kin := kins[rng.Intn(len(kins))]
			pat := pats[rng.Intn(len(pats))]

			// Starts every 15 minutes between 09:00 and 18:00, lasting 30
			// or 45 minutes. Picks that would overlap are skipped.
			startMin := 9*60 + rng.Intn(9*4)*agenda.SlotMinutes
			duration := agenda.SlotMinutes * (2 + rng.Intn(2))

			startAt, err := agenda.LocalToUTC(date, agenda.MinutesToHHMM(startMin))
			if err != nil {
				return fmt.Errorf("seed appointment time: %w", err)
			}
			endAt := startAt.Add(time.Duration(duration) * time.Minute)

			overlap, err := stores.Appointments.HasOverlap(ctx, kin.ID, startAt, endAt, nil)
			if err != nil {
				return err
			}
			if overlap {
				continue
			}

			note := noteBank[rng.Intn(len(noteBank))]
			appt := appointments.Appointment{
				ID:              uuid.New(),
				PatientID:       pat.ID,
				KinesiologistID: kin.ID,
				StartAt:         startAt,
				EndAt:           endAt,
				Status:          appointments.StatusScheduled,
				Notes:           &note,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if cfg.IncludeCancelled && created%7 == 6 {
				reason := "patient called to cancel"
				appt.Status = appointments.StatusCancelled
				appt.CancelledReason = &reason
			}
			if _, err := stores.Appointments.Create(ctx, appt); err != nil {
				return fmt.Errorf("seed appointment: %w", err)
			}
			created++
		}
	}

	logger.Info().
		Int("kinesiologists", len(kins)).
		Int("patients", len(pats)).
		Int("appointments", created).
		Msg("sandbox data seeded")
	return nil
}
