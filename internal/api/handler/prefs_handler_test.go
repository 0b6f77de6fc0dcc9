package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/service"
)

type memPrefsRepo struct {
	docs map[string]*domain.Preferences
}

func newMemPrefsRepo() *memPrefsRepo {
	return &memPrefsRepo{docs: make(map[string]*domain.Preferences)}
}

func (r *memPrefsRepo) Find(_ context.Context, username string) (*domain.Preferences, error) {
	prefs, ok := r.docs[username]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	clone := *prefs
	return &clone, nil
}

func (r *memPrefsRepo) Upsert(_ context.Context, prefs *domain.Preferences) error {
	clone := *prefs
	r.docs[prefs.Username] = &clone
	return nil
}

func TestPreferencesHandler_Get_Defaults(t *testing.T) {
	e := echo.New()
	h := NewPreferencesHandler(service.NewPreferencesService(newMemPrefsRepo()))

	c, rec := newTestContext(e, http.MethodGet, "/api/preferences", "")
	c.Set("user", &domain.User{Username: "alice"})

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if prefs.Palette != "dark" || prefs.DefaultPage != "/" {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}
}

func TestPreferencesHandler_Update_Roundtrip(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	repo := newMemPrefsRepo()
	h := NewPreferencesHandler(service.NewPreferencesService(repo))

	c, rec := newTestContext(e, http.MethodPut, "/api/preferences",
		`{"palette":"light","default_page":"/cves","sidebar_collapsed":true}`)
	c.Set("user", &domain.User{Username: "alice"})

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	saved := repo.docs["alice"]
	if saved == nil || saved.Palette != "light" || saved.DefaultPage != "/cves" || !saved.SidebarCollapsed {
		t.Fatalf("preferences not persisted: %+v", saved)
	}
}

func TestPreferencesHandler_Update_RejectsUnknownPalette(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewPreferencesHandler(service.NewPreferencesService(newMemPrefsRepo()))

	c, rec := newTestContext(e, http.MethodPut, "/api/preferences", `{"palette":"solarized"}`)
	c.Set("user", &domain.User{Username: "alice"})

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
