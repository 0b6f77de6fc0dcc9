package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/metrics"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
)

const (
	// SessionCookie carries the opaque browser session ID. The bearer token
	// itself never travels in a cookie; it stays on the gateway.
	SessionCookie = "minerva_sid"

	ctxSessionID = "sid"
	ctxSession   = "session"
	ctxUser      = "user"
)

// EnsureSessionID assigns every browser an opaque session ID cookie on first
// contact and exposes it to downstream handlers. It performs no
// authentication.
func EnsureSessionID(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				sid = cookie.Value
			} else {
				sid = newSessionID()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ctxSessionID, sid)
			return next(c)
		}
	}
}

// RequireSession gates a route on an authenticated session. Sessions the
// gateway has not seen since startup are resolved first (persisted token ->
// backend validation), so a restart is invisible to logged-in browsers.
// Unauthenticated page loads redirect to /login; API calls get 401.
func RequireSession(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(ctxSessionID).(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			if !store.Resolved(sid) {
				store.Initialize(c.Request().Context(), sid)
			}

			sess := store.Snapshot(sid)
			if !sess.Authenticated {
				metrics.GuardDenialsTotal.WithLabelValues("session").Inc()
				if wantsJSON(c) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusFound, loginLocation(c))
			}

			c.Set(ctxSession, sess)
			c.Set(ctxUser, sess.User)
			return next(c)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func loginLocation(c echo.Context) string {
	next := c.Request().URL.Path
	if next == "" || next == "/login" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
