package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/shared/server/middleware"
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

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/jobs/applications")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.updateStatus)
	g.DELETE("/:id", h.delete)
}

type statusRequest struct {
	Status Status `json:"status"`
}

type listResponse struct {
	Applications []Application `json:"applications"`
	Total        int           `json:"total"`
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}
	if in.UserID == "" {
		in.UserID = middleware.UserIDFromContext(c)
	}

	app, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	respond.Created(c, app)
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = middleware.UserIDFromContext(c)
	}
	apps, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, listResponse{Applications: apps, Total: len(apps)})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	app, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}
	app, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Application deleted"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "invalid_status", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to process application", err.Error())
	}
}
