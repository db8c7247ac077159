package jobdesc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/shared/telemetry"
)

// MaxDescriptionRunes bounds the posting text forwarded to the generation service.
const MaxDescriptionRunes = 30000

// Service analyses job descriptions.
type Service struct {
	LLM llm.Completer
}

// Analyze extracts skills, responsibilities and keywords from a posting.
func (s *Service) Analyze(ctx context.Context, description string) (Analysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Analysis{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionRunes {
		return Analysis{}, fmt.Errorf("%w: jobDescription exceeds %d characters", ErrInvalidInput, MaxDescriptionRunes)
	}
	if s.LLM == nil {
		return Analysis{}, ErrNotConfigured
	}

	start := time.Now()
	raw, err := s.LLM.CompleteJSON(ctx, llm.AnalyzeJobPrompt(), "Job description:\n"+description)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return Analysis{}, ErrNotConfigured
		}
		return Analysis{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var out Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		return Analysis{}, fmt.Errorf("%w: decode analysis: %v", ErrGeneration, err)
	}
	normalize(&out)
	if len(out.RequiredSkills)+len(out.PreferredSkills)+len(out.Keywords) == 0 {
		return Analysis{}, fmt.Errorf("%w: analysis contained no skills or keywords", ErrGeneration)
	}

	telemetry.Info("jobdesc.analyzed", map[string]any{
		"required_skills": len(out.RequiredSkills),
		"keywords":        len(out.Keywords),
		"duration_ms":     time.Since(start).Milliseconds(),
	})
	return out, nil
}

func normalize(a *Analysis) {
	a.Title = strings.TrimSpace(a.Title)
	a.Company = strings.TrimSpace(a.Company)
	a.RequiredSkills = cleanList(a.RequiredSkills)
	a.PreferredSkills = cleanList(a.PreferredSkills)
	a.Responsibilities = cleanList(a.Responsibilities)
	a.Keywords = cleanList(a.Keywords)
	a.ExperienceLevel = strings.ToLower(strings.TrimSpace(a.ExperienceLevel))
	if !experienceLevels[a.ExperienceLevel] {
		a.ExperienceLevel = "unknown"
	}
}

// cleanList trims entries and drops blanks and case-insensitive duplicates.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
