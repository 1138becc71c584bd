// Package memory provides in-process repositories for development and tests.
package memory

import (
	"context"
	"sync"

	"projectboard/internal/domain/models/board"
	boardRepo "projectboard/internal/domain/repositories/board"
)

// ProjectRepository keeps the last saved snapshot in memory
type ProjectRepository struct {
	mu       sync.RWMutex
	projects []board.Project
	saves    int
}

// NewProjectRepository creates an empty repository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

var _ boardRepo.ProjectRepository = (*ProjectRepository)(nil)

// List returns a copy of the saved projects
func (r *ProjectRepository) List(ctx context.Context) ([]board.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]board.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

// SaveSnapshot replaces the stored board
func (r *ProjectRepository) SaveSnapshot(ctx context.Context, projects []board.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects = append(r.projects[:0:0], projects...)
	r.saves++
	return nil
}

// Saves reports how many snapshots have been written
func (r *ProjectRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
