// Package http assembles the gin route tree and the HTTP server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
	"github.com/patwell/ipgate/internal/interfaces/http/handlers"
	"github.com/patwell/ipgate/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required to
// construct the complete route tree.
type RouterConfig struct {
	SearchHandler *handlers.SearchHandler
	AdminHandler  *handlers.AdminHandler
	HealthHandler *handlers.HealthHandler

	// MetricsHandler serves GET /metrics; nil disables the endpoint.
	MetricsHandler http.Handler
	// MetricsObserver records per-request telemetry; nil disables it.
	MetricsObserver middleware.HTTPObserver

	// CORSOrigins enables cross-origin access when non-empty.
	CORSOrigins []string

	// Mode is the gin mode ("release", "debug", "test").
	Mode string

	Logger        logging.Logger
	LoggingConfig middleware.LoggingConfig
}

// NewRouter constructs the complete route tree: global middleware, the public
// lookup endpoints, the admin override surface, and the meta endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.LoggingConfig))
	}
	if cfg.MetricsObserver != nil {
		r.Use(middleware.Metrics(cfg.MetricsObserver))
	}

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.Health)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	if cfg.SearchHandler != nil {
		api := r.Group("/api")
		api.GET("/patents/search", cfg.SearchHandler.SearchPatents)
		api.GET("/trademarks/search", cfg.SearchHandler.SearchTrademarks)
	}

	if cfg.AdminHandler != nil {
		admin := r.Group("/admin")
		admin.GET("/clients", cfg.AdminHandler.ListClients)
		admin.POST("/clients", cfg.AdminHandler.UpsertClient)
		admin.DELETE("/clients/:name", cfg.AdminHandler.DeleteClient)
	}

	return r
}
