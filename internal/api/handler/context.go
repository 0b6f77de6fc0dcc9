package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// ctxSessionID extracts the browser session ID injected by the
// EnsureSessionID middleware. Its absence means the middleware chain is
// miswired, which is a server fault, not a client one.
func ctxSessionID(c echo.Context) (string, error) {
	sid, _ := c.Get("sid").(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "session middleware not configured")
	}
	return sid, nil
}

// ctxUser extracts the authenticated user injected by RequireSession and
// fast-fails before any service call when it is missing.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}

// ctxSession extracts the session snapshot injected by RequireSession.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := c.Get("session").(domain.Session)
	if !ok || !sess.Authenticated {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated session")
	}
	return sess, nil
}
