package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	models "projectboard/internal/domain/models/board"
	"projectboard/internal/handler/sse"
	"projectboard/internal/httputil"
	"projectboard/internal/store"
)

// StreamHandler pushes board snapshots to browsers over Server-Sent Events
type StreamHandler struct {
	store  *store.Store
	config *sse.Config
	logger *slog.Logger
}

// NewStreamHandler creates a new board stream handler
func NewStreamHandler(st *store.Store, config *sse.Config, logger *slog.Logger) *StreamHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &StreamHandler{
		store:  st,
		config: config,
		logger: logger,
	}
}

// StreamProjects handles GET /api/projects/stream?status=active.
// The first event carries the current board; every store notification after
// that produces one more "projects" event.
func (h *StreamHandler) StreamProjects(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	clientID := uuid.New().String()

	// Latest wins: a client that falls behind only ever sees the newest board,
	// and the store's fan-out never blocks on a slow connection.
	updates := make(chan []models.Project, 1)
	sub, initial := h.store.SubscribeCurrent(func(projects []models.Project) {
		select {
		case updates <- projects:
			return
		default:
		}
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- projects:
		default:
		}
	})
	defer func() {
		sub.Unsubscribe()
		h.logger.Debug("SSE client removed", "client_id", clientID)
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	writer := sse.NewWriter(w, flusher, clientID)
	if err := writer.WriteEvent("projects", h.render(initial, status)); err != nil {
		h.logger.Info("client disconnected before initial snapshot",
			"client_id", clientID,
			"error", err,
		)
		return
	}

	h.logger.Debug("SSE stream established",
		"client_id", clientID,
		"filter", statusLabel(status),
	)

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	stopped := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("SSE client disconnected", "client_id", clientID)
			return

		case <-stopped:
			return

		case projects := <-updates:
			if err := writer.WriteEvent("projects", h.render(projects, status)); err != nil {
				h.logger.Info("client disconnected during event write",
					"client_id", clientID,
					"error", err,
				)
				return
			}
		}
	}
}

func (h *StreamHandler) render(projects []models.Project, status *models.ProjectStatus) []ProjectView {
	if status != nil {
		projects = models.FilterByStatus(projects, *status)
	}
	return newProjectViews(projects)
}

func statusLabel(status *models.ProjectStatus) string {
	if status == nil {
		return "all"
	}
	return status.String()
}
