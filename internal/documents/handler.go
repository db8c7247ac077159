package documents

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

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

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/list", h.list)
	rg.DELETE("/documents/clear-all", h.clearAll)
	rg.GET("/documents/download", h.download)
}

func (h *Handler) list(c *gin.Context) {
	limit, ok := ParseLimit(c)
	if !ok {
		return
	}
	if !h.Svc.Configured() {
		respond.OK(c, listResponse{Documents: []Item{}, Message: NotConfiguredMessage})
		return
	}

	listing, err := h.Svc.ListByType(c.Request.Context(), c.Query("type"), limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "list_failed", "Failed to list documents", err.Error())
		}
		return
	}

	respond.OK(c, listResponse{
		Documents: listing.Items,
		Total:     len(listing.Items),
		HasMore:   listing.HasMore,
	})
}

func (h *Handler) clearAll(c *gin.Context) {
	res, err := h.Svc.ClearAll(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "Object storage is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "clear_failed", "Failed to clear documents", err.Error())
		}
		return
	}

	msg := "No documents to delete"
	switch {
	case res.DeletedCount > 0 && len(res.Errors) > 0:
		msg = fmt.Sprintf("Deleted %d documents; %d could not be deleted", res.DeletedCount, len(res.Errors))
	case res.DeletedCount > 0:
		msg = fmt.Sprintf("Deleted %d documents", res.DeletedCount)
	case len(res.Errors) > 0:
		msg = fmt.Sprintf("%d documents could not be deleted", len(res.Errors))
	}
	respond.OK(c, clearAllResponse{
		Message:      msg,
		DeletedCount: res.DeletedCount,
		Errors:       res.Errors,
	})
}

func (h *Handler) download(c *gin.Context) {
	key := c.Query("key")
	c.Set("objectKey", key)

	obj, err := h.Svc.Get(c.Request.Context(), key)
	if err != nil {
		WriteError(c, err)
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": FileName(key)}))
	c.Data(http.StatusOK, contentType, obj.Body)
}

// WriteError maps service errors for single-object routes.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "Object storage is not configured", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "storage_error", "Object storage request failed", err.Error())
	}
}

// ParseLimit reads ?limit=. It writes a 400 and returns false on a malformed value.
func ParseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer", nil)
		return 0, false
	}
	return limit, true
}
