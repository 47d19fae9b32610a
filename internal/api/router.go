package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dogukanakin/local-mcp/internal/api/handler"
	"github.com/dogukanakin/local-mcp/internal/api/middleware"
	"github.com/dogukanakin/local-mcp/internal/store"
)

// RouterOptions tunes the backend router.
type RouterOptions struct {
	// RateLimit is the sustained request rate; 0 disables limiting.
	RateLimit rate.Limit
	// RateBurst is the limiter burst size; defaults to 20 when limiting
	// is enabled.
	RateBurst int
}

// NewRouter builds the Echo instance with all routes registered. Handlers
// see only the store interfaces, so st may be the in-memory store or any
// other implementation.
func NewRouter(st *store.MemStore, log zerolog.Logger, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 20
		}
		e.Use(middleware.RateLimit(opts.RateLimit, burst))
	}

	userHandler := handler.NewUserHandler(st)
	postHandler := handler.NewPostHandler(st)
	healthHandler := handler.NewHealthHandler()

	// --- Health probe ---
	e.GET("/", healthHandler.Root)

	// --- Users ---
	e.GET("/users", userHandler.List)
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Posts ---
	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create)
	e.GET("/posts/:id", postHandler.Get)
	e.PUT("/posts/:id", postHandler.Update)
	e.DELETE("/posts/:id", postHandler.Delete)

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
