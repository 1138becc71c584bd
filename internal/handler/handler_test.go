package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectboard/internal/handler/sse"
	boardService "projectboard/internal/service/board"
	"projectboard/internal/store"
	formrules "projectboard/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMux(t *testing.T) (*http.ServeMux, *store.Store) {
	t.Helper()
	rules, err := formrules.DefaultFormRules()
	require.NoError(t, err)

	st := store.New()
	svc := boardService.NewProjectService(st, rules, nil, discardLogger())
	projects := NewProjectHandler(svc, discardLogger())
	stream := NewStreamHandler(st, sse.DefaultConfig(), discardLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", NewHealthHandler(st).HealthCheck)
	mux.HandleFunc("GET /api/projects", projects.ListProjects)
	mux.HandleFunc("POST /api/projects", projects.CreateProject)
	mux.HandleFunc("GET /api/projects/stream", stream.StreamProjects)
	mux.HandleFunc("GET /api/projects/{id}", projects.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}/status", projects.MoveProject)
	return mux, st
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProjectHandler_CreateAndGet(t *testing.T) {
	mux, st := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/projects",
		`{"title":"Build API","description":"REST service","people":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "Build API", created["title"])
	assert.Equal(t, "3 persons", created["persons"])
	assert.Equal(t, "active", created["status"])
	assert.Equal(t, 1, st.Len())

	id := created["id"].(string)
	rec = do(t, mux, http.MethodGet, "/api/projects/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[ProjectView](t, rec).ID)

	rec = do(t, mux, http.MethodGet, "/api/projects/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectHandler_CreateValidation(t *testing.T) {
	mux, st := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/projects",
		`{"title":"","description":"abc","people":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	problem := decode[map[string]interface{}](t, rec)
	fields, ok := problem["errors"].(map[string]interface{})
	require.True(t, ok, "expected per-field errors, got %v", problem)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "people")
	assert.Zero(t, st.Len())

	rec = do(t, mux, http.MethodPost, "/api/projects", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectHandler_MoveAndList(t *testing.T) {
	mux, st := newTestMux(t)
	a := st.AddProject("A", "first one", 1)
	st.AddProject("B", "second one", 2)

	rec := do(t, mux, http.MethodPatch, "/api/projects/"+a.ID+"/status", `{"status":"finished"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "finished", decode[map[string]interface{}](t, rec)["status"])

	rec = do(t, mux, http.MethodGet, "/api/projects?status=finished", "")
	require.Equal(t, http.StatusOK, rec.Code)
	finished := decode[[]ProjectView](t, rec)
	require.Len(t, finished, 1)
	assert.Equal(t, "1 person", finished[0].Persons)

	rec = do(t, mux, http.MethodGet, "/api/projects", "")
	assert.Len(t, decode[[]ProjectView](t, rec), 2)

	rec = do(t, mux, http.MethodGet, "/api/projects?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPatch, "/api/projects/"+a.ID+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPatch, "/api/projects/missing/status", `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectHandler_EmptyListIsArray(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := do(t, mux, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	mux, st := newTestMux(t)
	st.AddProject("A", "first one", 1)

	rec := do(t, mux, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","projects":1,"subscribers":0}`, rec.Body.String())
}
