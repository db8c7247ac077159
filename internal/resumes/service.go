package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/events"
	"interview-prep-api/internal/extract"
	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/shared/metrics"
	"interview-prep-api/internal/shared/storage/object"
	"interview-prep-api/internal/shared/telemetry"
	"interview-prep-api/resume/model"
)

const (
	maxPromptResumeText = 30000
	maxJobDescription   = 20000
)

// Service runs the tailoring and parsing pipelines. Store may be nil when object
// storage is not configured; persistence is then skipped.
type Service struct {
	LLM    llm.Completer
	Store  object.ObjectStore
	Docs   *documents.Service
	Events events.Publisher
	Now    func() time.Time
}

// TailorInput is the tailoring request.
type TailorInput struct {
	ResumeData     json.RawMessage
	JobDescription string
	CompanyName    string
	RoleTitle      string
	RequestID      string
	UserID         string
}

// TailorMetadata echoes the envelope header.
type TailorMetadata struct {
	CompanyName string `json:"companyName"`
	RoleTitle   string `json:"roleTitle"`
	CreatedAt   string `json:"createdAt"`
}

// TailorResult is returned whether or not persistence succeeded.
type TailorResult struct {
	Success        bool             `json:"success"`
	TailoredResume model.ResumeData `json:"tailoredResume"`
	Document       string           `json:"document"`
	S3URL          *string          `json:"s3Url"`
	Key            *string          `json:"key,omitempty"`
	Metadata       TailorMetadata   `json:"metadata"`
	StorageWarning string           `json:"storageWarning,omitempty"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Tailor rewrites a resume for a job description. Storage of the envelope is best-effort:
// a failure is logged and reported in StorageWarning, never returned as an error.
func (s *Service) Tailor(ctx context.Context, in TailorInput) (TailorResult, error) {
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.RoleTitle = strings.TrimSpace(in.RoleTitle)
	if isEmptyJSON(in.ResumeData) {
		return TailorResult{}, fmt.Errorf("%w: resumeData is required", ErrInvalidInput)
	}
	if !json.Valid(in.ResumeData) {
		return TailorResult{}, fmt.Errorf("%w: resumeData must be JSON", ErrInvalidInput)
	}
	if in.JobDescription == "" {
		return TailorResult{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}

	started := time.Now()
	metrics.IncTailorStarted()
	defer func() { metrics.ObserveTailorDuration(time.Since(started)) }()

	raw, err := s.LLM.CompleteJSON(ctx, llm.TailorPrompt(), tailorUserPrompt(in))
	if err != nil {
		metrics.IncTailorFailed()
		return TailorResult{}, generationError(err)
	}
	tailored, err := DecodeResume(raw, true)
	if err != nil {
		metrics.IncTailorFailed()
		return TailorResult{}, err
	}

	now := s.now()
	createdAt := isoTime(now)
	result := TailorResult{
		Success:        true,
		TailoredResume: tailored,
		Document:       RenderDocument(tailored),
		Metadata: TailorMetadata{
			CompanyName: in.CompanyName,
			RoleTitle:   in.RoleTitle,
			CreatedAt:   createdAt,
		},
	}

	env := Envelope{
		CompanyName:    in.CompanyName,
		RoleTitle:      in.RoleTitle,
		CreatedAt:      createdAt,
		OriginalResume: in.ResumeData,
		TailoredResume: tailored,
		JobDescription: in.JobDescription,
		Document:       result.Document,
	}
	key := documents.NewKey(documents.KindTailored, now, in.RoleTitle, ".json")
	url, err := s.putJSON(ctx, key, env, map[string]string{
		"companyname": in.CompanyName,
		"roletitle":   in.RoleTitle,
		"createdat":   createdAt,
	})
	if err != nil {
		metrics.IncTailorStorageFailed()
		telemetry.Warn("resume.tailor.store_failed", map[string]any{
			"object_key": key,
			"request_id": in.RequestID,
			"error":      err.Error(),
		})
		result.StorageWarning = err.Error()
		return result, nil
	}

	result.S3URL = &url
	result.Key = &key
	s.publish(ctx, events.TypeResumeTailored, key, in.RequestID, in.UserID, in.CompanyName, in.RoleTitle)
	return result, nil
}

// ParseInput is an uploaded resume file.
type ParseInput struct {
	FileName    string
	ContentType string
	Data        []byte
	RequestID   string
	UserID      string
}

// ParseResult carries the structured resume and the keys it was stored under, if any.
type ParseResult struct {
	Success        bool             `json:"success"`
	ParsedResume   model.ResumeData `json:"parsedResume"`
	RawText        string           `json:"rawText"`
	OriginalKey    *string          `json:"originalKey"`
	ParsedKey      *string          `json:"parsedKey"`
	StorageWarning string           `json:"storageWarning,omitempty"`
}

// Parse extracts text from an upload, structures it with the generation service and
// stores the original file plus a parsed envelope on a best-effort basis.
func (s *Service) Parse(ctx context.Context, in ParseInput) (ParseResult, error) {
	if len(in.Data) == 0 {
		return ParseResult{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	text, mimeType, err := extract.Text(ctx, in.Data, in.ContentType, in.FileName)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupported):
			return ParseResult{}, fmt.Errorf("%w: %v", ErrUnsupportedFile, err)
		case errors.Is(err, extract.ErrNoText):
			return ParseResult{}, ErrNoText
		default:
			return ParseResult{}, fmt.Errorf("%w: %v", ErrNoText, err)
		}
	}

	raw, err := s.LLM.CompleteJSON(ctx, llm.ParsePrompt(), "Resume text:\n"+truncate(text, maxPromptResumeText))
	if err != nil {
		return ParseResult{}, generationError(err)
	}
	parsed, err := DecodeResume(raw, false)
	if err != nil {
		return ParseResult{}, err
	}

	result := ParseResult{Success: true, ParsedResume: parsed, RawText: text}

	now := s.now()
	base := strings.TrimSuffix(filepath.Base(in.FileName), filepath.Ext(in.FileName))
	originalKey := documents.NewKey(documents.KindOriginal, now, base, filepath.Ext(in.FileName))
	if err := s.put(ctx, originalKey, in.Data, mimeType, map[string]string{"originalfilename": in.FileName}); err != nil {
		telemetry.Warn("resume.parse.store_original_failed", map[string]any{"object_key": originalKey, "error": err.Error()})
		result.StorageWarning = err.Error()
		return result, nil
	}
	result.OriginalKey = &originalKey

	parsedKey := documents.NewKey(documents.KindParsed, now, base, ".json")
	env := ParsedEnvelope{
		OriginalFileName: in.FileName,
		UploadedAt:       isoTime(now),
		OriginalKey:      originalKey,
		ParsedResume:     parsed,
		RawText:          text,
	}
	if _, err := s.putJSON(ctx, parsedKey, env, map[string]string{"originalfilename": in.FileName}); err != nil {
		telemetry.Warn("resume.parse.store_parsed_failed", map[string]any{"object_key": parsedKey, "error": err.Error()})
		result.StorageWarning = err.Error()
		return result, nil
	}
	result.ParsedKey = &parsedKey
	s.publish(ctx, events.TypeResumeParsed, parsedKey, in.RequestID, in.UserID, "", "")
	return result, nil
}

// List returns stored resumes under prefix, tailored ones by default, with JSON
// envelopes enriched with their header fields.
func (s *Service) List(ctx context.Context, prefix string, limit int) (documents.Listing, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix, _ = documents.Prefix(documents.KindTailored)
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if documents.KindOf(prefix) == "" {
		return documents.Listing{}, fmt.Errorf("%w: unknown prefix %q", ErrInvalidInput, prefix)
	}
	return s.Docs.List(ctx, documents.ListOptions{
		Prefixes: []string{prefix},
		Limit:    limit,
		Enrich:   func(key string) bool { return strings.HasSuffix(key, ".json") },
	})
}

// Get returns the stored JSON envelope at key.
func (s *Service) Get(ctx context.Context, key string) (json.RawMessage, error) {
	obj, err := s.Docs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !json.Valid(obj.Body) {
		return nil, fmt.Errorf("stored object %s is not JSON", key)
	}
	return json.RawMessage(obj.Body), nil
}

// Delete removes a stored resume. Absent keys succeed.
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.Docs.Delete(ctx, key)
}

func (s *Service) putJSON(ctx context.Context, key string, v any, meta map[string]string) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	if err := s.put(ctx, key, body, "application/json", meta); err != nil {
		return "", err
	}
	return s.Store.URL(key), nil
}

func (s *Service) put(ctx context.Context, key string, body []byte, contentType string, meta map[string]string) error {
	if s.Store == nil {
		return errStoreNotConfigured
	}
	return s.Store.Put(ctx, key, body, contentType, asciiMetadata(meta))
}

func (s *Service) publish(ctx context.Context, eventType, key, requestID, userID, company, role string) {
	if s.Events == nil {
		return
	}
	evt := events.New(eventType, key)
	evt.RequestID = requestID
	evt.UserID = userID
	evt.CompanyName = company
	evt.RoleTitle = role
	if err := s.Events.Publish(ctx, evt); err != nil {
		telemetry.Warn("events.publish_failed", map[string]any{"type": eventType, "object_key": key, "error": err.Error()})
	}
}

func generationError(err error) error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return ErrNotConfigured
	}
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}

func tailorUserPrompt(in TailorInput) string {
	var b bytes.Buffer
	if in.CompanyName != "" {
		b.WriteString("Company: " + in.CompanyName + "\n")
	}
	if in.RoleTitle != "" {
		b.WriteString("Role: " + in.RoleTitle + "\n")
	}
	b.WriteString("\nJob description:\n")
	b.WriteString(truncate(in.JobDescription, maxJobDescription))
	b.WriteString("\n\nCurrent resume (JSON):\n")
	b.Write(in.ResumeData)
	return b.String()
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// asciiMetadata drops characters S3 user metadata cannot carry.
func asciiMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		clean := strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII || !unicode.IsPrint(r) {
				return -1
			}
			return r
		}, v)
		if clean != "" {
			out[k] = clean
		}
	}
	return out
}
