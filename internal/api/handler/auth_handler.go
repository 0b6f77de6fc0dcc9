package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
)

type AuthHandler struct {
	store ports.SessionStore
}

func NewAuthHandler(store ports.SessionStore) *AuthHandler {
	return &AuthHandler{store: store}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse mirrors the session record for the browser, minus the
// bearer token, which never leaves the gateway.
type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	Loading       bool                `json:"loading"`
	State         domain.SessionState `json:"state"`
	User          *domain.User        `json:"user,omitempty"`
	Error         string              `json:"error,omitempty"`
}

func toSessionResponse(sess domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: sess.Authenticated,
		Loading:       sess.Loading,
		State:         sess.State(),
		User:          sess.User,
		Error:         sess.Err,
	}
}

// Login authenticates this browser session against the backend.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if !h.store.Login(c.Request().Context(), sid, req.Username, req.Password) {
		sess := h.store.Snapshot(sid)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": sess.Err})
	}

	return c.JSON(http.StatusOK, toSessionResponse(h.store.Snapshot(sid)))
}

// Logout clears the session. Purely local: the JWT is stateless and there is
// no upstream revocation endpoint.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	h.store.Logout(c.Request().Context(), sid)
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state. It is public so the login page
// can poll it; it resolves persisted tokens on first contact.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	if !h.store.Resolved(sid) {
		h.store.Initialize(c.Request().Context(), sid)
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.store.Snapshot(sid)))
}

// ClearError resets the session's error message and nothing else.
//
// @Summary      Clear session error
// @Tags         auth
// @Success      204
// @Router       /api/auth/clear-error [post]
func (h *AuthHandler) ClearError(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	h.store.ClearError(sid)
	return c.NoContent(http.StatusNoContent)
}

// SSOCallback installs a token minted by the external identity provider and
// validates it against the backend before letting the browser in.
//
// @Summary      SSO callback
// @Tags         auth
// @Param        token  query  string  true  "Bearer token issued by the IdP"
// @Success      302
// @Router       /sso-callback [get]
func (h *AuthHandler) SSOCallback(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	token := c.QueryParam("token")
	if token == "" {
		return c.Redirect(http.StatusFound, "/login")
	}

	if !h.store.AdoptToken(c.Request().Context(), sid, token) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, "/")
}
