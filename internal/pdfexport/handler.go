package pdfexport

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/shared/server/respond"
	"interview-prep-api/internal/shared/util"
	"interview-prep-api/resume/model"
)

// ClientIDHeader carries the caller's stable client id for request coordination.
const ClientIDHeader = "X-Client-Id"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the PDF route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/generate-pdf", h.generate)
}

type generateRequest struct {
	ResumeData *model.ResumeData `json:"resumeData"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}

	clientID := strings.TrimSpace(c.GetHeader(ClientIDHeader))
	pdf, err := h.Svc.Generate(c.Request.Context(), clientID, req.ResumeData)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrSuperseded):
			respond.Error(c, http.StatusConflict, "superseded", "A newer PDF request replaced this one", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "render_failed", "Failed to generate PDF", err.Error())
		}
		return
	}

	name := util.Slugify(req.ResumeData.ContactInfo.Name, "resume") + ".pdf"
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
