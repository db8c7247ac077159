package lookup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches lookup routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations/search", h.locations)
	rg.GET("/institutions/search", h.institutions)
}

func (h *Handler) locations(c *gin.Context) {
	results, fallback, err := h.Svc.SearchLocations(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"results": results, "fallback": fallback})
}

func (h *Handler) institutions(c *gin.Context) {
	results, fallback, err := h.Svc.SearchInstitutions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"results": results, "fallback": fallback})
}
