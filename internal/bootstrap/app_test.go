package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-prep-api/internal/shared/config"
)

func localConfig(t *testing.T) config.Config {
	return config.Config{
		Env:                 "dev",
		ObjectStoreType:     "local",
		LocalStoreDir:       t.TempDir(),
		CORSAllowOrigin:     []string{"http://localhost:3000"},
		GenerationRateLimit: 1,
		GenerationBurst:     5,
	}
}

func TestBuildLocalServesCoreRoutes(t *testing.T) {
	app, err := Build(localConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app.Router)
	assert.Nil(t, app.DB)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.Equal(t, "local", report["objectStore"])
	assert.Equal(t, false, report["llm"])

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/applications", strings.NewReader(`{"jobTitle":"Engineer","company":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/list?type=all", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "pdf_render_superseded_total")
}

func TestBuildWithoutS3CredentialsDegrades(t *testing.T) {
	cfg := localConfig(t)
	cfg.ObjectStoreType = "s3"
	cfg.S3Bucket = "bucket"

	app, err := Build(cfg)
	require.NoError(t, err)
	assert.Nil(t, app.Store)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/list", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"message"`)

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/resume/list?key=nonexistent.json", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestGenerationRoutesAreRateLimited(t *testing.T) {
	cfg := localConfig(t)
	cfg.GenerationRateLimit = 0.001
	cfg.GenerationBurst = 1
	app, err := Build(cfg)
	require.NoError(t, err)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/analyze", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)
		return resp.Code
	}
	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/jobs/applications", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBuildLookupWiresGeocoderWhenKeyed(t *testing.T) {
	svc := buildLookup(config.Config{GoogleMapsAPIKey: "maps-key"})
	assert.NotNil(t, svc.Locations)
	assert.NotNil(t, svc.Institutions)
}
