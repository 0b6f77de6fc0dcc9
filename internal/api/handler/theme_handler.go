package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/service"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/theme"
)

// ThemeHandler serves the palette-derived stylesheet every page links.
type ThemeHandler struct {
	prefs *service.PreferencesService
	store ports.SessionStore
	log   zerolog.Logger
}

func NewThemeHandler(prefs *service.PreferencesService, store ports.SessionStore, log zerolog.Logger) *ThemeHandler {
	return &ThemeHandler{prefs: prefs, store: store, log: log}
}

// Stylesheet renders the CSS for the requested palette. Without an explicit
// ?palette= the authenticated user's saved preference wins; anonymous
// browsers (the login page) get the default.
//
// @Summary      Theme stylesheet
// @Tags         theme
// @Produce      text/css
// @Param        palette  query  string  false  "Palette name"
// @Success      200
// @Router       /theme.css [get]
func (h *ThemeHandler) Stylesheet(c echo.Context) error {
	palette := c.QueryParam("palette")

	if palette == "" {
		if sid, _ := c.Get("sid").(string); sid != "" {
			if sess := h.store.Snapshot(sid); sess.Authenticated {
				prefs, err := h.prefs.Get(c.Request().Context(), sess.User.Username)
				if err != nil {
					h.log.Warn().Err(err).Str("username", sess.User.Username).Msg("preferences lookup failed")
				} else {
					palette = prefs.Palette
				}
			}
		}
	}

	css := theme.CSS(theme.Styles(theme.PaletteByName(palette)))
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
