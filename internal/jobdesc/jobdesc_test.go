package jobdesc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-prep-api/internal/llm"
)

type stubCompleter struct {
	reply string
	err   error
	user  string
}

func (s *stubCompleter) CompleteJSON(_ context.Context, _, user string) (json.RawMessage, error) {
	s.user = user
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.reply), nil
}

func TestAnalyzeNormalizesOutput(t *testing.T) {
	stub := &stubCompleter{reply: `{
		"title": " Backend Engineer ",
		"company": "Acme",
		"requiredSkills": ["Go", " go ", "", "PostgreSQL"],
		"preferredSkills": null,
		"responsibilities": ["Own services"],
		"experienceLevel": "Senior",
		"keywords": ["distributed systems"]
	}`}
	svc := &Service{LLM: stub}

	got, err := svc.Analyze(context.Background(), "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.RequiredSkills)
	assert.NotNil(t, got.PreferredSkills)
	assert.Empty(t, got.PreferredSkills)
	assert.Equal(t, "senior", got.ExperienceLevel)
	assert.Contains(t, stub.user, "We need a Go engineer.")
}

func TestAnalyzeUnknownLevelAndEmptyResult(t *testing.T) {
	svc := &Service{LLM: &stubCompleter{reply: `{"requiredSkills":["Go"],"experienceLevel":"wizard"}`}}
	got, err := svc.Analyze(context.Background(), "posting")
	require.NoError(t, err)
	assert.Equal(t, "unknown", got.ExperienceLevel)

	svc = &Service{LLM: &stubCompleter{reply: `{"title":"x"}`}}
	_, err = svc.Analyze(context.Background(), "posting")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := (&Service{LLM: &stubCompleter{}}).Analyze(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = (&Service{LLM: &stubCompleter{}}).Analyze(context.Background(), strings.Repeat("a", MaxDescriptionRunes+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = (&Service{LLM: llm.PlaceholderClient{}}).Analyze(context.Background(), "posting")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = (&Service{LLM: &stubCompleter{err: errors.New("timeout")}}).Analyze(context.Background(), "posting")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestAnalyzeHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&Service{LLM: &stubCompleter{reply: `{"keywords":["Go"]}`}}).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/analyze", strings.NewReader(`{"jobDescription":"Go role"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Analysis Analysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"Go"}, body.Analysis.Keywords)

	req = httptest.NewRequest(http.MethodPost, "/api/jobs/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
