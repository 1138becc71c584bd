package handler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectboard/internal/domain"
	"projectboard/internal/httputil"
	boardService "projectboard/internal/service/board"
	"projectboard/internal/store"
	formrules "projectboard/internal/validation"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: title", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("project x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"conflict", fmt.Errorf("hydrate: %w", &domain.ConflictError{Message: "duplicate project id a", ResourceType: "project", ResourceID: "a"}), http.StatusConflict},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

// logLines decodes every JSON log record written to buf
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func findLog(lines []map[string]interface{}, msg string) map[string]interface{} {
	for _, line := range lines {
		if line["msg"] == msg {
			return line
		}
	}
	return nil
}

func TestProjectHandler_LogsAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rules, err := formrules.DefaultFormRules()
	require.NoError(t, err)
	st := store.New(store.WithLogger(discardLogger()))
	h := NewProjectHandler(boardService.NewProjectService(st, rules, nil, discardLogger()), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/projects", h.CreateProject)
	mux.HandleFunc("PATCH /api/projects/{id}/status", h.MoveProject)

	req := httptest.NewRequest(http.MethodPost, "/api/projects",
		strings.NewReader(`{"title":"Build API","description":"REST service","people":3}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithUserID(req, "user-1"))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[ProjectView](t, rec).ID

	req = httptest.NewRequest(http.MethodPatch, "/api/projects/"+id+"/status", strings.NewReader(`{"status":"finished"}`))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithUserID(req, "user-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	lines := logLines(t, &buf)

	created := findLog(lines, "project created")
	require.NotNil(t, created)
	assert.Equal(t, "user-1", created["user_id"])
	assert.Equal(t, id, created["id"])

	moved := findLog(lines, "project moved")
	require.NotNil(t, moved)
	assert.Equal(t, "user-1", moved["user_id"])
	assert.Equal(t, "finished", moved["status"])
}
