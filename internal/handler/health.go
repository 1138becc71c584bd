package handler

import (
	"net/http"

	"projectboard/internal/httputil"
	"projectboard/internal/store"
)

// HealthHandler reports liveness and the board size
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"projects":    h.store.Len(),
		"subscribers": h.store.Subscribers(),
	})
}
