package importer

import (
	"archive/zip"
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thali/internal/assets"
	"thali/internal/items"
	"thali/internal/staging"

	"github.com/gin-gonic/gin"
)

func setupTestRouter() (*gin.Engine, *items.InMemoryRepository) {
	gin.SetMode(gin.TestMode)

	repo := items.NewInMemoryRepository()
	service := NewService(staging.NewStore(), repo, assets.NewLinker(newMemoryUploader()))
	handler := NewHandler(service)

	r := gin.New()
	r.POST("/import", handler.Import)
	r.GET("/import/placeholders", handler.DownloadPlaceholders)
	r.POST("/import/images", handler.UploadImages)
	r.POST("/import/commit", handler.Commit)
	return r, repo
}

func doJSONImport(t *testing.T, r *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportEndpointStagesBatch(t *testing.T) {
	r, _ := setupTestRouter()

	w := doJSONImport(t, r, samplePayload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"staged":2`) {
		t.Fatalf("expected 2 staged items in response: %s", w.Body.String())
	}
}

func TestImportEndpointRejectsBadPayload(t *testing.T) {
	r, _ := setupTestRouter()

	w := doJSONImport(t, r, `{"not":"an array"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestPlaceholderEndpoint(t *testing.T) {
	r, _ := setupTestRouter()

	// Nothing staged yet.
	req := httptest.NewRequest(http.MethodGet, "/import/placeholders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 before import, got %d", w.Code)
	}

	doJSONImport(t, r, samplePayload)

	req = httptest.NewRequest(http.MethodGet, "/import/placeholders", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("expected application/zip, got %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 placeholder entries, got %d", len(zr.File))
	}
}

func TestImageUploadAndCommitFlow(t *testing.T) {
	r, repo := setupTestRouter()

	doJSONImport(t, r, samplePayload)

	// Build the filled archive the client would upload back.
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	entry, _ := zw.Create("item-1/front.jpg")
	if _, err := entry.Write([]byte("jpeg")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("images", "images.zip")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(archive.Bytes()); err != nil {
		t.Fatalf("form write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("form close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/import/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"consumed":1`) {
		t.Fatalf("expected 1 consumed entry: %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/import/commit", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	pending, err := repo.PendingRestaurants(req.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 committed restaurant, got %d", len(pending))
	}
	if pending[0].ImagePath == "" {
		t.Fatal("committed restaurant lost its image path")
	}

	// Staging is cleared: a second commit has nothing to do.
	req = httptest.NewRequest(http.MethodPost, "/import/commit", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on empty commit, got %d", w.Code)
	}
}

func TestImageUploadRejectsMalformedZip(t *testing.T) {
	r, _ := setupTestRouter()
	doJSONImport(t, r, samplePayload)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("images", "images.zip")
	if _, err := part.Write([]byte("definitely not a zip")); err != nil {
		t.Fatalf("form write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("form close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/import/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
