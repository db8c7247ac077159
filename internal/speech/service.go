package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/shared/telemetry"
)

const (
	MaxTextRunes  = 5000
	MaxAudioBytes = 25 << 20
)

// Service fronts text-to-speech and transcription. A nil TTS means speech
// synthesis is not configured.
type Service struct {
	TTS Synthesizer
	STT llm.Transcriber
}

// Speak synthesizes text.
func (s *Service) Speak(ctx context.Context, text, voiceID string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > MaxTextRunes {
		return nil, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidInput, MaxTextRunes)
	}
	if s.TTS == nil {
		return nil, ErrNotConfigured
	}
	audio, err := s.TTS.Synthesize(ctx, text, strings.TrimSpace(voiceID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	telemetry.Info("speech.tts", map[string]any{"chars": utf8.RuneCountInString(text), "bytes": len(audio)})
	return audio, nil
}

// Transcribe converts recorded audio to text.
func (s *Service) Transcribe(ctx context.Context, fileName string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: audio is required", ErrInvalidInput)
	}
	if len(audio) > MaxAudioBytes {
		return "", fmt.Errorf("%w: audio exceeds %d bytes", ErrInvalidInput, MaxAudioBytes)
	}
	if s.STT == nil {
		return "", ErrNotConfigured
	}
	text, err := s.STT.Transcribe(ctx, fileName, audio)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return "", ErrNotConfigured
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	telemetry.Info("speech.transcribed", map[string]any{"bytes": len(audio), "chars": utf8.RuneCountInString(text)})
	return text, nil
}
