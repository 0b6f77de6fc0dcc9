package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/service"
)

type PreferencesHandler struct {
	prefs *service.PreferencesService
}

func NewPreferencesHandler(prefs *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

type updatePreferencesRequest struct {
	Palette          string `json:"palette" validate:"required,oneof=dark light"`
	DefaultPage      string `json:"default_page" validate:"omitempty,startswith=/"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
}

// Get returns the calling user's UI preferences, defaults included.
//
// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  domain.Preferences
// @Router       /api/preferences [get]
func (h *PreferencesHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	prefs, err := h.prefs.Get(c.Request().Context(), user.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Update replaces the calling user's UI preferences.
//
// @Summary      Update preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      updatePreferencesRequest  true  "New preferences"
// @Success      200   {object}  domain.Preferences
// @Failure      400   {object}  map[string]string
// @Router       /api/preferences [put]
func (h *PreferencesHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	saved, err := h.prefs.Save(c.Request().Context(), &domain.Preferences{
		Username:         user.Username,
		Palette:          req.Palette,
		DefaultPage:      req.DefaultPage,
		SidebarCollapsed: req.SidebarCollapsed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}
