package kinesiologists

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kinesio/frontdesk/internal/platform/rest"
)

func seedRepo() *Repo {
	repo := NewRepo()
	now := time.Now().UTC()
	lic := "KIN-2241"
	repo.Add(Kinesiologist{
		ID: uuid.New(), FirstName: "Paula", LastName: "Suarez",
		Email: "paula.suarez@clinic.test", LicenseNumber: &lic,
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
	repo.Add(Kinesiologist{
		ID: uuid.New(), FirstName: "Martin", LastName: "Acosta",
		Email: "martin.acosta@clinic.test",
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
	repo.Add(Kinesiologist{
		ID: uuid.New(), FirstName: "Elena", LastName: "Rivas",
		Email: "elena.rivas@clinic.test",
		Active: false, CreatedAt: now, UpdatedAt: now,
	})
	return repo
}

func TestRepoListActiveOrdering(t *testing.T) {
	repo := seedRepo()

	items, err := repo.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active kinesiologists, got %d", len(items))
	}
	if items[0].LastName != "Acosta" || items[1].LastName != "Suarez" {
		t.Fatalf("unexpected ordering: %s, %s", items[0].LastName, items[1].LastName)
	}
}

func TestRepoListIncludesInactive(t *testing.T) {
	repo := seedRepo()

	items, err := repo.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 kinesiologists, got %d", len(items))
	}
}

func TestHandlerListDefaultsToActive(t *testing.T) {
	h := NewHandler(seedRepo())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/kinesiologists", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []Kinesiologist
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, k := range items {
		if !k.Active {
			t.Fatalf("inactive kinesiologist %s leaked into active list", k.Email)
		}
	}
}

func TestHandlerListActiveFalse(t *testing.T) {
	h := NewHandler(seedRepo())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/kinesiologists?active=false", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var items []Kinesiologist
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestClientList(t *testing.T) {
	e := echo.New()
	NewHandler(seedRepo()).RegisterRoutes(e.Group("/api/v1"))
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := NewClient(rest.New(srv.URL, "demo-recepcionista-token"))

	items, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active kinesiologists, got %d", len(items))
	}
	if got := items[0].DisplayName(); got != "Acosta, Martin" {
		t.Fatalf("unexpected display name %q", got)
	}

	all, err := client.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 kinesiologists, got %d", len(all))
	}
}
