package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio-labs/portfolio-backend/internal/bootstrap"
	"github.com/devfolio-labs/portfolio-backend/internal/media"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store/jsonfile"
)

const hostedURL = "https://res.cloudinary.com/demo/image/upload/v1/portfolio/projects/shot.webp"

type fakeMedia struct {
	destroyed []string
}

func (f *fakeMedia) Upload(ctx context.Context, r io.Reader, folder string) (*media.UploadResult, error) {
	return &media.UploadResult{URL: hostedURL, PublicID: "portfolio/projects/shot"}, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string) (string, error) {
	f.destroyed = append(f.destroyed, publicID)
	return "ok", nil
}

func newServer(t *testing.T, adminEnabled bool) (*gin.Engine, *fakeMedia) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	md := &fakeMedia{}
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     "portfolio-backend",
		Version:         "test",
		Store:           jsonfile.New(filepath.Join(t.TempDir(), "projects.json")),
		StoreDriver:     "jsonfile",
		Media:           md,
		UploadFolder:    "portfolio/projects",
		AdminEnabled:    adminEnabled,
		MutationsPerMin: 0,
		AllowOrigins:    []string{"*"},
	})
	return r, md
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectLifecycle(t *testing.T) {
	r, md := newServer(t, true)

	// create
	w := doJSON(r, http.MethodPost, "/api/projects", gin.H{
		"title":       "Case Study",
		"description": "long form writeup",
		"category":    "web",
		"image":       hostedURL,
		"challenges":  []string{"scale", "budget"},
		"solutions":   []string{"cache"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "case-study", created.Slug)
	assert.Equal(t, []string{"cache", ""}, created.Solutions)

	// fetch it back
	w = doJSON(r, http.MethodGet, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// update the image; the old hosted one is cleaned up
	w = doJSON(r, http.MethodPut, "/api/projects/1", gin.H{"image": "/portfolio-default.jpg"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"portfolio/projects/shot"}, md.destroyed)

	// delete
	w = doJSON(r, http.MethodDelete, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project deleted successfully")

	// catalog is empty again
	w = doJSON(r, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAdminGateDisablesMutations(t *testing.T) {
	r, _ := newServer(t, false)

	w := doJSON(r, http.MethodPost, "/api/projects", gin.H{
		"title": "t", "description": "d", "category": "c",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/images?url=x", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// reads stay open
	w = doJSON(r, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newServer(t, true)

	w := doJSON(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "jsonfile", resp["store"])
}

func TestRequestIDEcho(t *testing.T) {
	r, _ := newServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-Id"))
}
