package speech

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/shared/server/respond"
	"interview-prep-api/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches speech routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/speech/tts", h.tts)
	rg.POST("/speech/transcribe", h.transcribe)
}

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}

func (h *Handler) tts(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid JSON body", err.Error())
		return
	}
	audio, err := h.Svc.Speak(c.Request.Context(), req.Text, req.VoiceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

func (h *Handler) transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAudioBytes+1<<20)
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file is required", err.Error())
		return
	}
	if fileHeader.Size > MaxAudioBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file too large", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read audio file", err.Error())
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read audio file", err.Error())
		return
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	text, err := h.Svc.Transcribe(c.Request.Context(), name, audio)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"text": text})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "Speech service is not configured", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "upstream_error", "Speech service request failed", err.Error())
	}
}
