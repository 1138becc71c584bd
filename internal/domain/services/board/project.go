package board

import (
	"context"

	"projectboard/internal/domain/models/board"
)

// CreateProjectRequest represents a request to add a project to the board
type CreateProjectRequest struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	People      int    `json:"people" yaml:"people"`
}

// MoveProjectRequest represents a drop of a project onto a status column
type MoveProjectRequest struct {
	Status string `json:"status"`
}

// ProjectService defines business logic operations for the board
type ProjectService interface {
	// CreateProject validates the request and appends a new active project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*board.Project, error)

	// MoveProject changes a project's status. Moving to the current status
	// succeeds without notifying subscribers.
	MoveProject(ctx context.Context, id string, req *MoveProjectRequest) (*board.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id string) (*board.Project, error)

	// ListProjects returns the board in insertion order, optionally filtered by status
	ListProjects(ctx context.Context, status *board.ProjectStatus) ([]board.Project, error)
}
