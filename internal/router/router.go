package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/handler"
	"github.com/uowclimb/society-seats/internal/middleware"
)

// Handlers groups everything RegisterRoutes wires up, so main only
// builds one value.
type Handlers struct {
	Auth         *handler.AuthHandler
	Events       *handler.EventHandler
	Participants *handler.ParticipantHandler
	Register     *handler.RegistrationHandler
}

// RegisterRoutes registers every route the application serves: the
// public registration pages, the admin pages, and the API.  The
// session cookie issued by login guards both the dashboard page and
// the mutating API endpoints; the guard answers 404 so the admin
// surface is indistinguishable from a missing page.
func RegisterRoutes(e *echo.Echo, cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	// Static pages.  The registration page is the public face of the
	// app, so the bare root redirects there.
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/register")
	})
	e.Static("/register", filepath.Join(cfg.WebRoot, "register"))
	e.Static("/resources", filepath.Join(cfg.WebRoot, "resources"))
	e.File("/admin", filepath.Join(cfg.WebRoot, "admin", "login.html"))
	e.File("/admin/", filepath.Join(cfg.WebRoot, "admin", "login.html"))

	guard := middleware.CookieAuth(cfg.JWTSecret)
	e.GET("/admin/dashboard.html",
		func(c echo.Context) error {
			return c.File(filepath.Join(cfg.WebRoot, "admin", "dashboard.html"))
		}, guard)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	api := e.Group("/api")
	api.POST("/login", h.Auth.Login, limiter)
	api.POST("/register", h.Register.Register, limiter)

	api.GET("/events", h.Events.GetEvents, middleware.EventDetailCache(cacheCfg, rdb))
	api.POST("/events", h.Events.CreateEvent, guard)
	api.PUT("/events", h.Events.UpdateEvent, guard)
	api.DELETE("/event", h.Events.DeleteEvent, guard)

	api.GET("/participants", h.Participants.GetParticipants, guard)
	api.DELETE("/participant", h.Participants.DeleteParticipant, guard)
}
