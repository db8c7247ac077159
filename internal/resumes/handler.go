package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/shared/server/middleware"
	"interview-prep-api/internal/shared/server/respond"
	"interview-prep-api/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/tailor", h.tailor)
	rg.POST("/resume/parse", h.parse)
	rg.GET("/resume/list", h.list)
	rg.DELETE("/resume/list", h.delete)
	rg.GET("/resume/get", h.get)
}

type tailorRequest struct {
	ResumeData     json.RawMessage `json:"resumeData"`
	JobDescription string          `json:"jobDescription"`
	CompanyName    string          `json:"companyName"`
	RoleTitle      string          `json:"roleTitle"`
}

func (h *Handler) tailor(c *gin.Context) {
	var req tailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Tailor(c.Request.Context(), TailorInput{
		ResumeData:     req.ResumeData,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		RoleTitle:      req.RoleTitle,
		RequestID:      middleware.RequestIDFromContext(c),
		UserID:         middleware.UserIDFromContext(c),
	})
	if err != nil {
		writeError(c, err, "Failed to tailor resume")
		return
	}
	if res.Key != nil {
		c.Set("objectKey", *res.Key)
	}
	respond.OK(c, res)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds 10MB limit", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	res, err := h.Svc.Parse(c.Request.Context(), ParseInput{
		FileName:    fileName,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		RequestID:   middleware.RequestIDFromContext(c),
		UserID:      middleware.UserIDFromContext(c),
	})
	if err != nil {
		writeError(c, err, "Failed to parse resume")
		return
	}
	if res.ParsedKey != nil {
		c.Set("objectKey", *res.ParsedKey)
	}
	respond.OK(c, res)
}

type listResponse struct {
	Resumes []documents.Item `json:"resumes"`
	Total   int              `json:"total"`
	HasMore bool             `json:"hasMore"`
	Message string           `json:"message,omitempty"`
}

func (h *Handler) list(c *gin.Context) {
	limit, ok := documents.ParseLimit(c)
	if !ok {
		return
	}
	if !h.Svc.Docs.Configured() {
		respond.OK(c, listResponse{Resumes: []documents.Item{}, Message: documents.NotConfiguredMessage})
		return
	}

	listing, err := h.Svc.List(c.Request.Context(), c.Query("prefix"), limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "list_failed", "Failed to list resumes", err.Error())
		}
		return
	}
	respond.OK(c, listResponse{
		Resumes: listing.Items,
		Total:   len(listing.Items),
		HasMore: listing.HasMore,
	})
}

func (h *Handler) delete(c *gin.Context) {
	key := c.Query("key")
	c.Set("objectKey", key)
	if err := h.Svc.Delete(c.Request.Context(), key); err != nil {
		documents.WriteError(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true, "message": "Resume deleted successfully"})
}

func (h *Handler) get(c *gin.Context) {
	key := c.Query("key")
	c.Set("objectKey", key)
	body, err := h.Svc.Get(c.Request.Context(), key)
	if err != nil {
		documents.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedFile):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNoText):
		respond.Error(c, http.StatusUnprocessableEntity, "no_text", "No text could be extracted from the file", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, "not_configured", "Generation service is not configured", nil)
	case errors.Is(err, ErrGeneration):
		respond.Error(c, http.StatusInternalServerError, "generation_failed", fallback, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, err.Error())
	}
}
