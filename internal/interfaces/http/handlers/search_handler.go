package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/resolver"
	"github.com/patwell/ipgate/pkg/errors"
)

// SearchHandler serves the public lookup endpoints.  Both domains answer 200
// with the canonical aggregate shape whenever the query parameter is present;
// exhausted or failed resolutions surface inside the body, not as HTTP
// errors.
type SearchHandler struct {
	patents    *resolver.Resolver[records.Patent]
	trademarks *resolver.Resolver[records.Trademark]
}

// NewSearchHandler wires the two domain resolvers.
func NewSearchHandler(patents *resolver.Resolver[records.Patent], trademarks *resolver.Resolver[records.Trademark]) *SearchHandler {
	return &SearchHandler{patents: patents, trademarks: trademarks}
}

// SearchPatents handles GET /api/patents/search?assignee=<name>.
func (h *SearchHandler) SearchPatents(c *gin.Context) {
	assignee := c.Query("assignee")
	if assignee == "" {
		respondError(c, errors.Validation("assignee query parameter is required"))
		return
	}

	result, err := h.patents.Resolve(c.Request.Context(), assignee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchTrademarks handles GET /api/trademarks/search?owner=<name>.
func (h *SearchHandler) SearchTrademarks(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		respondError(c, errors.Validation("owner query parameter is required"))
		return
	}

	result, err := h.trademarks.Resolve(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
