package pdfexport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"interview-prep-api/internal/shared/metrics"
	"interview-prep-api/internal/shared/telemetry"
	"interview-prep-api/resume/model"
)

// Service renders resumes to PDF, discarding results that a newer request from
// the same client has superseded.
type Service struct {
	Renderer Renderer
	Coord    *Coordinator
}

// Generate renders data. An empty clientID skips coordination.
func (s *Service) Generate(ctx context.Context, clientID string, data *model.ResumeData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: resumeData is required", ErrInvalidInput)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.Renderer == nil {
		return nil, fmt.Errorf("%w: renderer not configured", ErrRender)
	}

	html, err := RenderHTML(*data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if clientID == "" || s.Coord == nil {
		return s.render(ctx, html)
	}

	runCtx, ticket := s.Coord.Begin(ctx, clientID)
	defer s.Coord.Finish(ticket)

	pdf, err := s.render(runCtx, html)
	if errors.Is(context.Cause(runCtx), ErrSuperseded) || !s.Coord.Current(ticket) {
		metrics.IncPDFSuperseded()
		telemetry.Info("pdf.superseded", map[string]any{
			"client_id":  clientID,
			"ticket":     ticket.ID,
			"generation": ticket.Generation,
		})
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func (s *Service) render(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()
	pdf, err := s.Renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrRender)
	}
	telemetry.Info("pdf.rendered", map[string]any{
		"bytes":       len(pdf),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return pdf, nil
}
