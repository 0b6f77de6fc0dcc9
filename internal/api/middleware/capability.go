package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/metrics"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// RequireCapability gates a route on a capability flag, on top of
// RequireSession. A missing capability renders the fixed access-denied view;
// it never redirects and never touches the session itself.
func RequireCapability(cap domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ctxUser).(*domain.User)
			if !user.HasCapability(cap) {
				metrics.GuardDenialsTotal.WithLabelValues("capability").Inc()
				if wantsJSON(c) {
					return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
				}
				return c.HTML(http.StatusForbidden, accessDeniedPage)
			}
			return next(c)
		}
	}
}

// accessDeniedPage is the fixed denial view: it blocks the page without
// navigating away or clearing the session.
const accessDeniedPage = `<!doctype html>
<html><head><title>Access denied</title><link rel="stylesheet" href="/theme.css"></head>
<body class="mv-card">
<h1>Access denied</h1>
<p class="mv-text">Your account does not have permission to view this page.</p>
<p><a href="/">Back to dashboard</a></p>
</body></html>
`
