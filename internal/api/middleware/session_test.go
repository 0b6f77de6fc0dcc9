package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// fakeStore implements ports.SessionStore with canned state.
type fakeStore struct {
	sessions  map[string]domain.Session
	resolved  map[string]bool
	initCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[string]domain.Session),
		resolved: make(map[string]bool),
	}
}

func (f *fakeStore) Initialize(_ context.Context, sid string) {
	f.initCalls++
	f.resolved[sid] = true
}

func (f *fakeStore) Resolved(sid string) bool { return f.resolved[sid] }

func (f *fakeStore) Login(_ context.Context, sid, _, _ string) bool {
	return f.sessions[sid].Authenticated
}

func (f *fakeStore) Logout(_ context.Context, sid string) {
	f.sessions[sid] = domain.Session{}
}

func (f *fakeStore) LoadUser(_ context.Context, _ string)          {}
func (f *fakeStore) AdoptToken(_ context.Context, _, _ string) bool { return false }

func (f *fakeStore) ClearError(sid string) {
	sess := f.sessions[sid]
	sess.Err = ""
	f.sessions[sid] = sess
}

func (f *fakeStore) Snapshot(sid string) domain.Session { return f.sessions[sid] }

func authenticatedSession() domain.Session {
	return domain.Session{
		User:          &domain.User{Username: "alice", CanConfigureSystem: false},
		Token:         "tok-1",
		Authenticated: true,
	}
}

func TestRequireSession_AllowsAuthenticated(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	store.resolved["sid-1"] = true
	store.sessions["sid-1"] = authenticatedSession()

	req := httptest.NewRequest(http.MethodGet, "/cves", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sid-1")

	called := false
	handler := RequireSession(store)(func(c echo.Context) error {
		called = true
		user, _ := c.Get("user").(*domain.User)
		if user == nil || user.Username != "alice" {
			t.Fatalf("user not injected: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireSession_RedirectsPageLoads(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	store.resolved["sid-1"] = true

	req := httptest.NewRequest(http.MethodGet, "/leaks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sid-1")

	handler := RequireSession(store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.HasPrefix(loc, "/login") || !strings.Contains(loc, "next=%2Fleaks") {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestRequireSession_RejectsAPICalls(t *testing.T) {
	e := echo.New()
	store := newFakeStore()
	store.resolved["sid-1"] = true

	req := httptest.NewRequest(http.MethodGet, "/api/preferences", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sid-1")

	handler := RequireSession(store)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSession_InitializesUnseenSessions(t *testing.T) {
	e := echo.New()
	store := newFakeStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", "sid-1")

	handler := RequireSession(store)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)

	if store.initCalls != 1 {
		t.Fatalf("expected one Initialize call, got %d", store.initCalls)
	}

	// Resolved sessions are not re-initialized.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	c2 := e.NewContext(req2, httptest.NewRecorder())
	c2.Set("sid", "sid-1")
	_ = handler(c2)

	if store.initCalls != 1 {
		t.Fatalf("resolved session should not be re-initialized, got %d calls", store.initCalls)
	}
}

func TestEnsureSessionID_SetsCookie(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := EnsureSessionID(false)(func(c echo.Context) error {
		sid, _ := c.Get("sid").(string)
		if sid == "" {
			t.Fatalf("sid not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(cookie, SessionCookie+"=") || !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("session cookie not set: %q", cookie)
	}
}

func TestEnsureSessionID_ReusesCookie(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "existing-sid"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := EnsureSessionID(false)(func(c echo.Context) error {
		if sid, _ := c.Get("sid").(string); sid != "existing-sid" {
			t.Fatalf("expected existing sid, got %q", sid)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderSetCookie) != "" {
		t.Fatalf("cookie should not be reissued")
	}
}
