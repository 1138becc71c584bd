package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"projectboard/internal/config"
	"projectboard/internal/domain"
	models "projectboard/internal/domain/models/board"
	boardSvc "projectboard/internal/domain/services/board"
	"projectboard/internal/store"
	formrules "projectboard/internal/validation"
)

// MetricsRecorder receives counts of board mutations
type MetricsRecorder interface {
	IncrementCreated()
	IncrementMoved(status models.ProjectStatus)
}

type nopRecorder struct{}

func (nopRecorder) IncrementCreated()                   {}
func (nopRecorder) IncrementMoved(models.ProjectStatus) {}

// projectService implements the ProjectService interface
type projectService struct {
	store   *store.Store
	rules   *formrules.FormRules
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewProjectService creates a new board service. metrics may be nil.
func NewProjectService(
	st *store.Store,
	rules *formrules.FormRules,
	metrics MetricsRecorder,
	logger *slog.Logger,
) boardSvc.ProjectService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &projectService{
		store:   st,
		rules:   rules,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateProject validates the form input and adds an active project
func (s *projectService) CreateProject(ctx context.Context, req *boardSvc.CreateProjectRequest) (*models.Project, error) {
	input := boardSvc.CreateProjectRequest{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		People:      req.People,
	}

	if err := s.validateCreateRequest(&input); err != nil {
		s.logger.Debug("project rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	project := s.store.AddProject(input.Title, input.Description, input.People)
	s.metrics.IncrementCreated()

	return &project, nil
}

// MoveProject moves a project to another status column
func (s *projectService) MoveProject(ctx context.Context, id string, req *boardSvc.MoveProjectRequest) (*models.Project, error) {
	status, err := s.validateMoveRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, ok := s.store.Project(id); !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	if s.store.MoveProject(id, status) {
		s.metrics.IncrementMoved(status)
	} else {
		s.logger.Debug("project already in status",
			"id", id,
			"status", status.String(),
		)
	}

	project, _ := s.store.Project(id)
	return &project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, ok := s.store.Project(id)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return &project, nil
}

// ListProjects returns the board, optionally only one status column
func (s *projectService) ListProjects(ctx context.Context, status *models.ProjectStatus) ([]models.Project, error) {
	projects := s.store.Snapshot()
	if status == nil {
		return projects, nil
	}
	return models.FilterByStatus(projects, *status), nil
}

// validateCreateRequest runs the form constraints plus storage limits
func (s *projectService) validateCreateRequest(req *boardSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			s.rules.Title,
			validation.RuneLength(0, config.MaxProjectTitleLength),
		),
		validation.Field(&req.Description,
			s.rules.Description,
			validation.RuneLength(0, config.MaxProjectDescriptionLength),
		),
		validation.Field(&req.People, s.rules.People),
	)
}

// validateMoveRequest checks the target status and parses it
func (s *projectService) validateMoveRequest(req *boardSvc.MoveProjectRequest) (models.ProjectStatus, error) {
	name := strings.ToLower(strings.TrimSpace(req.Status))

	allowed := make([]interface{}, len(models.Statuses))
	for i, st := range models.Statuses {
		allowed[i] = st.String()
	}

	err := validation.Validate(name,
		validation.Required,
		validation.In(allowed...).Error("must be one of active, finished"),
	)
	if err != nil {
		return 0, fmt.Errorf("status: %v", err)
	}

	return models.ParseStatus(name)
}
