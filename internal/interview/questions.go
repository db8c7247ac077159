package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/shared/telemetry"
)

// Service generates and scores mock interview questions.
type Service struct {
	LLM llm.Completer
}

// Questions asks the generation service for count questions tailored to the role.
func (s *Service) Questions(ctx context.Context, in QuestionsInput) ([]Question, error) {
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.RoleTitle = strings.TrimSpace(in.RoleTitle)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.JobDescription == "" && in.RoleTitle == "" {
		return nil, fmt.Errorf("%w: jobDescription or roleTitle is required", ErrInvalidInput)
	}
	if in.Count == 0 {
		in.Count = DefaultQuestionCount
	}
	if in.Count < 1 || in.Count > MaxQuestionCount {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, MaxQuestionCount)
	}
	if !questionTypes[in.Type] {
		return nil, fmt.Errorf("%w: unknown question type %q", ErrInvalidInput, in.Type)
	}
	if s.LLM == nil {
		return nil, ErrNotConfigured
	}

	user, err := questionsUserPrompt(in)
	if err != nil {
		return nil, err
	}
	raw, err := s.LLM.CompleteJSON(ctx, llm.InterviewQuestionsPrompt(), user)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var reply struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: decode questions: %v", ErrGeneration, err)
	}

	out := make([]Question, 0, in.Count)
	for _, q := range reply.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.Category = strings.ToLower(strings.TrimSpace(q.Category))
		if q.Category == "" {
			q.Category = "general"
		}
		q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
		if !difficulties[q.Difficulty] {
			q.Difficulty = "medium"
		}
		q.ID = "q" + strconv.Itoa(len(out)+1)
		out = append(out, q)
		if len(out) == in.Count {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no questions returned", ErrGeneration)
	}

	telemetry.Info("interview.questions", map[string]any{
		"requested": in.Count,
		"returned":  len(out),
		"type":      in.Type,
	})
	return out, nil
}

func questionsUserPrompt(in QuestionsInput) (string, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)
	if in.Type != "" && in.Type != "mixed" {
		fmt.Fprintf(&b, "Question category: %s\n", in.Type)
	}
	if in.RoleTitle != "" {
		fmt.Fprintf(&b, "Role: %s\n", in.RoleTitle)
	}
	if in.JobDescription != "" {
		b.WriteString("\nJob description:\n")
		b.WriteString(in.JobDescription)
		b.WriteString("\n")
	}
	if in.ResumeData != nil {
		resume, err := json.Marshal(in.ResumeData)
		if err != nil {
			return "", fmt.Errorf("%w: resumeData: %v", ErrInvalidInput, err)
		}
		b.WriteString("\nCandidate resume (JSON):\n")
		b.Write(resume)
		b.WriteString("\n")
	}
	return b.String(), nil
}
