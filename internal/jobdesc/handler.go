package jobdesc

import (
	"errors"
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

// RegisterRoutes attaches the analysis route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/analyze", h.analyze)
}

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, "not_configured", "Generation service is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "Failed to analyze job description", err.Error())
		}
		return
	}
	respond.OK(c, gin.H{"analysis": analysis})
}
