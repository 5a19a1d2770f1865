package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/patwell/ipgate/internal/domain/override"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
	"github.com/patwell/ipgate/pkg/errors"
)

// A client name must survive normalization: "???" is required but still
// unusable as a storage key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("clientname", func(fl validator.FieldLevel) bool {
			return override.Normalize(fl.Field().String()) != ""
		})
	}
}

// AdminHandler serves the operator surface for the client override store.
type AdminHandler struct {
	store *override.Store
	log   logging.Logger
}

// NewAdminHandler wires the override store.
func NewAdminHandler(store *override.Store, log logging.Logger) *AdminHandler {
	return &AdminHandler{store: store, log: log.Named("admin")}
}

// upsertClientRequest is the POST /admin/clients body.
type upsertClientRequest struct {
	Name       string              `json:"name" binding:"required,clientname"`
	Patents    []records.Patent    `json:"patents"`
	Trademarks []records.Trademark `json:"trademarks"`
}

// clientEntry is one stored override as exposed by the admin surface.
type clientEntry struct {
	Name       string              `json:"name"`
	Patents    []records.Patent    `json:"patents"`
	Trademarks []records.Trademark `json:"trademarks"`
}

// ListClients handles GET /admin/clients: every stored override, keyed by
// normalized name.
func (h *AdminHandler) ListClients(c *gin.Context) {
	all := h.store.All()

	clients := make(map[string]clientEntry, len(all))
	for key, rec := range all {
		clients[key] = clientEntry{
			Name:       rec.Name,
			Patents:    rec.Patents,
			Trademarks: rec.Trademarks,
		}
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// UpsertClient handles POST /admin/clients: insert or replace the override
// stored under the normalized client name.
func (h *AdminHandler) UpsertClient(c *gin.Context) {
	var req upsertClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.CodeValidation, "invalid request body"))
		return
	}

	key, err := h.store.Upsert(req.Name, req.Patents, req.Trademarks)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("client override stored",
		logging.String("key", key),
		logging.String("name", req.Name),
		logging.Int("patents", len(req.Patents)),
		logging.Int("trademarks", len(req.Trademarks)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("client %q stored under key %q", req.Name, key),
		"key":     key,
	})
}

// DeleteClient handles DELETE /admin/clients/:name.  The path segment is
// normalized before lookup, so any spelling of the stored name works.
func (h *AdminHandler) DeleteClient(c *gin.Context) {
	name := c.Param("name")
	key := override.Normalize(name)
	if !h.store.Delete(name) {
		respondError(c, errors.NotFound("no client override stored under that name"))
		return
	}

	h.log.Info("client override deleted", logging.String("key", key))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("client override %q deleted", key),
	})
}
