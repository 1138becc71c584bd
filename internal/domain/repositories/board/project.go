package board

import (
	"context"

	"projectboard/internal/domain/models/board"
)

// ProjectRepository persists board snapshots
type ProjectRepository interface {
	// List returns every stored project in board (insertion) order
	List(ctx context.Context) ([]board.Project, error)

	// SaveSnapshot stores the full board sequence. Rows are upserted by ID;
	// the slice index becomes the stored position.
	SaveSnapshot(ctx context.Context, projects []board.Project) error
}
