package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultElevenLabsURL = "https://api.elevenlabs.io"
	defaultTTSModel      = "eleven_multilingual_v2"

	// DefaultVoiceID is used when neither the request nor the config names a voice.
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
)

// Synthesizer converts text to MPEG audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// ElevenLabs calls the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	apiKey     string
	voiceID    string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsOptions configures NewElevenLabs.
type ElevenLabsOptions struct {
	APIKey  string
	VoiceID string
	BaseURL string
	Timeout time.Duration
}

// NewElevenLabs constructs a client. An empty API key is an error.
func NewElevenLabs(opts ElevenLabsOptions) (*ElevenLabs, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY is required")
	}
	voice := strings.TrimSpace(opts.VoiceID)
	if voice == "" {
		voice = DefaultVoiceID
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultElevenLabsURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ElevenLabs{
		apiKey:     opts.APIKey,
		voiceID:    voice,
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize returns MPEG audio for text. An empty voiceID uses the configured voice.
func (e *ElevenLabs) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if voiceID == "" {
		voiceID = e.voiceID
	}
	payload, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: defaultTTSModel})
	if err != nil {
		return nil, err
	}
	endpoint := e.baseURL + "/v1/text-to-speech/" + url.PathEscape(voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return nil, fmt.Errorf("elevenlabs http status %d: %s", resp.StatusCode, msg)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("elevenlabs returned no audio")
	}
	return body, nil
}

var _ Synthesizer = (*ElevenLabs)(nil)
