package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	models "projectboard/internal/domain/models/board"
	boardRepo "projectboard/internal/domain/repositories/board"
	"projectboard/internal/store"
)

// NewSnapshotPersister returns a store listener that writes every snapshot
// to repo. Each write gets its own timeout; failures are logged and the next
// snapshot overwrites the gap.
func NewSnapshotPersister(repo boardRepo.ProjectRepository, timeout time.Duration, logger *slog.Logger) store.Listener {
	return func(projects []models.Project) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := repo.SaveSnapshot(ctx, projects); err != nil {
			logger.Error("snapshot persist failed",
				"projects", len(projects),
				"error", err,
			)
			return
		}

		logger.Debug("snapshot persisted",
			"projects", len(projects),
			"duration", time.Since(start),
		)
	}
}

// Restore hydrates an empty store from repo and returns the number of projects loaded
func Restore(ctx context.Context, repo boardRepo.ProjectRepository, st *store.Store) (int, error) {
	projects, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load board: %w", err)
	}

	if err := st.Hydrate(projects); err != nil {
		return 0, fmt.Errorf("hydrate board: %w", err)
	}

	return len(projects), nil
}
