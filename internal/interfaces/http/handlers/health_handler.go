package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patwell/ipgate/internal/cache"
	"github.com/patwell/ipgate/internal/domain/override"
)

// HealthHandler serves liveness and service metadata endpoints.
type HealthHandler struct {
	cache   cache.Cache
	store   *override.Store
	version string
	started time.Time
}

// NewHealthHandler wires the cache and override store for status reporting.
func NewHealthHandler(c cache.Cache, store *override.Store, version string) *HealthHandler {
	return &HealthHandler{cache: c, store: store, version: version, started: time.Now()}
}

// Health handles GET /health.  The service reports degraded (but still 200)
// when the cache backend is unreachable; resolution works without it.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		status = "degraded"
	}

	body := gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"clients":   h.store.Len(),
	}
	if size, ok := h.cache.Size(c.Request.Context()); ok {
		body["cacheSize"] = size
	}

	c.JSON(http.StatusOK, body)
}

// Root handles GET /: service identity and the endpoint map.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "ipgate",
		"version": h.version,
		"endpoints": gin.H{
			"patents":    "/api/patents/search?assignee=<name>",
			"trademarks": "/api/trademarks/search?owner=<name>",
			"admin":      "/admin/clients",
			"health":     "/health",
			"metrics":    "/metrics",
		},
	})
}
