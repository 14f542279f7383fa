package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinesio/frontdesk/internal/domain/appointments"
	"github.com/kinesio/frontdesk/internal/domain/kinesiologists"
	"github.com/kinesio/frontdesk/internal/domain/patients"
)

func newStores() Stores {
	return Stores{
		Kinesiologists: kinesiologists.NewRepo(),
		Patients:       patients.NewRepo(),
		Appointments:   appointments.NewRepo(),
	}
}

func TestSeedPopulatesStores(t *testing.T) {
	stores := newStores()
	cfg := DefaultSeedConfig()

	if err := Seed(context.Background(), stores, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	kins, err := stores.Kinesiologists.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list kinesiologists: %v", err)
	}
	if len(kins) != cfg.KinesiologistCount {
		t.Fatalf("expected %d kinesiologists, got %d", cfg.KinesiologistCount, len(kins))
	}

	pats, err := stores.Patients.Search(context.Background(), "", 100)
	if err != nil {
		t.Fatalf("search patients: %v", err)
	}
	if len(pats) != cfg.PatientCount {
		t.Fatalf("expected %d patients, got %d", cfg.PatientCount, len(pats))
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := DefaultSeedConfig()

	a, b := newStores(), newStores()
	if err := Seed(context.Background(), a, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("seed a: %v", err)
	}
	if err := Seed(context.Background(), b, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("seed b: %v", err)
	}

	ka, _ := a.Kinesiologists.List(context.Background(), false)
	kb, _ := b.Kinesiologists.List(context.Background(), false)
	if len(ka) != len(kb) {
		t.Fatalf("kinesiologist counts differ: %d vs %d", len(ka), len(kb))
	}
	for i := range ka {
		if ka[i].Email != kb[i].Email {
			t.Errorf("kinesiologist %d differs: %s vs %s", i, ka[i].Email, kb[i].Email)
		}
	}

	pa, _ := a.Patients.Search(context.Background(), "", 100)
	pb, _ := b.Patients.Search(context.Background(), "", 100)
	for i := range pa {
		if pa[i].DNI != pb[i].DNI {
			t.Errorf("patient %d differs: %s vs %s", i, pa[i].DNI, pb[i].DNI)
		}
	}
}

func TestSeedNeverOverlapsPerKinesiologist(t *testing.T) {
	stores := newStores()
	cfg := DefaultSeedConfig()
	cfg.AppointmentsPerDay = 30

	if err := Seed(context.Background(), stores, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	from := time.Now().UTC().Add(-24 * time.Hour)
	to := from.Add(24 * time.Hour * time.Duration(cfg.Days+2))

	kins, _ := stores.Kinesiologists.List(context.Background(), false)
	for _, k := range kins {
		appts, err := stores.Appointments.ListByKinesiologistAndRange(context.Background(), k.ID, from, to)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i := 0; i < len(appts); i++ {
			for j := i + 1; j < len(appts); j++ {
				x, y := appts[i], appts[j]
				if x.Status != appointments.StatusScheduled || y.Status != appointments.StatusScheduled {
					continue
				}
				if x.StartAt.Before(y.EndAt) && y.StartAt.Before(x.EndAt) {
					t.Errorf("kinesiologist %s has overlapping appointments %s and %s", k.Email, x.ID, y.ID)
				}
			}
		}
	}
}
