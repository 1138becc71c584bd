package handler

import (
	"log/slog"
	"net/http"

	boardSvc "projectboard/internal/domain/services/board"
	"projectboard/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService boardSvc.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService boardSvc.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects returns the board, optionally one column
// GET /api/projects?status=active
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newProjectViews(projects))
}

// CreateProject submits the project form
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req boardSvc.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"people", project.People,
		"user_id", httputil.GetUserID(r),
	)

	httputil.RespondJSON(w, http.StatusCreated, newProjectView(*project))
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Project ID")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newProjectView(*project))
}

// MoveProject drops a project onto a status column
// PATCH /api/projects/{id}/status
func (h *ProjectHandler) MoveProject(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Project ID")
	if !ok {
		return
	}

	var req boardSvc.MoveProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.MoveProject(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("project moved",
		"id", project.ID,
		"status", project.Status.String(),
		"user_id", httputil.GetUserID(r),
	)

	httputil.RespondJSON(w, http.StatusOK, newProjectView(*project))
}
