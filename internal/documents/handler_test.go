package documents

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/shared/storage/object/objecttest"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func TestListWithoutStoreReturnsEmptyWithMessage(t *testing.T) {
	router := newTestRouter(&Service{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/list?type=all", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body listResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 0 || len(body.Documents) != 0 || body.Message == "" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestListRejectsUnknownTypeAndBadLimit(t *testing.T) {
	router := newTestRouter(&Service{Store: objecttest.New()})

	for _, target := range []string{"/api/documents/list?type=drafts", "/api/documents/list?limit=abc"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.Code)
		}
	}
}

func TestListFailureIs500(t *testing.T) {
	store := objecttest.New()
	store.ListErr = http.ErrServerClosed
	router := newTestRouter(&Service{Store: store})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/list", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestClearAllOnEmptyBucket(t *testing.T) {
	router := newTestRouter(&Service{Store: objecttest.New()})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/documents/clear-all", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["deletedCount"] != float64(0) {
		t.Fatalf("expected deletedCount 0, got %v", body["deletedCount"])
	}
	if _, ok := body["errors"]; ok {
		t.Fatalf("expected no errors field on clean clear")
	}
}

func TestClearAllWithoutStoreIs503(t *testing.T) {
	router := newTestRouter(&Service{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/documents/clear-all", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestDownloadServesStoredBytes(t *testing.T) {
	store := objecttest.New()
	store.Seed("original-resumes/1-cv.pdf", []byte("%PDF-1.4"), "application/pdf", nil)
	router := newTestRouter(&Service{Store: store})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/download?key=original-resumes/1-cv.pdf", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if resp.Body.String() != "%PDF-1.4" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/download?key=original-resumes/missing.pdf", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/documents/download", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
