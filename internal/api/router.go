package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/handler"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/middleware"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/service"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/feed"
)

// Deps carries everything the route table needs wired in.
type Deps struct {
	Store        ports.SessionStore
	Preferences  *service.PreferencesService
	Bridge       *feed.Bridge
	Mongo        *mongo.Database
	Redis        *redis.Client
	Log          zerolog.Logger
	CookieSecure bool
}

// authenticatedPages is the guarded page surface: path -> page name/title.
// Order matters only for reading the route table top to bottom.
var authenticatedPages = []struct {
	Path  string
	Name  string
	Title string
}{
	{"/", "home", "Overview"},
	{"/dashboards", "dashboards", "Dashboards"},
	{"/dashboard", "dashboard", "Dashboard"},
	{"/chat", "chat", "Chat"},
	{"/info", "info", "Info"},
	{"/leaks", "leaks", "Leak Browser"},
	{"/cves", "cves", "CVE Browser"},
	{"/telegram", "telegram", "Telegram"},
	{"/telegram/conversation", "telegram-conversation", "Telegram Conversation"},
	{"/cti", "cti", "CTI"},
	{"/cti/feeds", "cti-feeds", "CTI Feeds"},
	{"/cti/enrichment", "cti-enrichment", "CTI Enrichment"},
	{"/cti/search", "cti-search", "CTI Search"},
	{"/cti/iocs", "cti-iocs", "IOC Browser"},
	{"/profile", "profile", "Profile"},
	{"/downloads", "downloads", "Downloads"},
	{"/csv-upload", "csv-upload", "CSV Upload"},
}

// adminPages additionally require the configure_system capability.
var adminPages = []struct {
	Path  string
	Name  string
	Title string
}{
	{"/servers", "servers", "Servers"},
	{"/settings", "settings", "Settings"},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("minerva_gateway"))
	e.Use(middleware.EnsureSessionID(deps.CookieSecure))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Store)
	pageHandler := handler.NewPageHandler()
	themeHandler := handler.NewThemeHandler(deps.Preferences, deps.Store, deps.Log)
	prefsHandler := handler.NewPreferencesHandler(deps.Preferences)
	feedHandler := handler.NewFeedHandler(deps.Bridge)

	requireSession := middleware.RequireSession(deps.Store)
	requireConfig := middleware.RequireCapability(domain.CapConfigureSystem)

	// --- Public routes ---
	e.GET("/login", pageHandler.Login)
	e.GET("/sso-callback", authHandler.SSOCallback)
	e.GET("/theme.css", themeHandler.Stylesheet)

	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session)
	e.POST("/api/auth/clear-error", authHandler.ClearError)

	// --- Authenticated routes ---
	for _, p := range authenticatedPages {
		e.GET(p.Path, pageHandler.Page(p.Name, p.Title), requireSession)
	}
	e.GET("/ws", feedHandler.Connect, requireSession)
	e.GET("/api/preferences", prefsHandler.Get, requireSession)
	e.PUT("/api/preferences", prefsHandler.Update, requireSession)

	// --- Admin routes (configure_system capability) ---
	for _, p := range adminPages {
		e.GET(p.Path, pageHandler.Page(p.Name, p.Title), requireSession, requireConfig)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// Unmatched paths go home; the guarded "/" decides from there.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/")
	})

	return e
}
