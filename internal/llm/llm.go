package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Completer returns a single JSON object produced by the generation service.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (json.RawMessage, error)
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, fileName string, audio []byte) (string, error)
}

var (
	// ErrNotConfigured is returned when no provider API key is set.
	ErrNotConfigured = errors.New("generation service not configured")

	// ErrInvalidOutput marks a response that is not a single JSON object.
	ErrInvalidOutput = errors.New("generation service returned invalid JSON")
)

// PlaceholderClient stands in for a provider when no API key is configured.
type PlaceholderClient struct{}

// CompleteJSON returns ErrNotConfigured.
func (PlaceholderClient) CompleteJSON(context.Context, string, string) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}

// Transcribe returns ErrNotConfigured.
func (PlaceholderClient) Transcribe(context.Context, string, []byte) (string, error) {
	return "", ErrNotConfigured
}

// ExtractJSONObject strips markdown fences and surrounding prose from a model reply and
// returns the outermost JSON object.
func ExtractJSONObject(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```JSON")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no object found", ErrInvalidOutput)
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: malformed object", ErrInvalidOutput)
	}
	return json.RawMessage(candidate), nil
}

var (
	_ Completer   = PlaceholderClient{}
	_ Transcriber = PlaceholderClient{}
)
