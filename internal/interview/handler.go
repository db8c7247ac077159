package interview

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

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview/questions", h.questions)
	rg.POST("/interview/score", h.score)
}

func (h *Handler) questions(c *gin.Context) {
	var in QuestionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}

	questions, err := h.Svc.Questions(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, "not_configured", "Generation service is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "Failed to generate questions", err.Error())
		}
		return
	}
	respond.OK(c, gin.H{"questions": questions})
}

func (h *Handler) score(c *gin.Context) {
	var in ScoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}
	result, err := ScoreAnswer(in)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, result)
}
