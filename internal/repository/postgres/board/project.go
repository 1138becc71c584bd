package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"projectboard/internal/domain"
	models "projectboard/internal/domain/models/board"
	repos "projectboard/internal/domain/repositories"
	boardRepo "projectboard/internal/domain/repositories/board"
	"projectboard/internal/repository/postgres"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool      *pgxpool.Pool
	tables    *postgres.TableNames
	txManager repos.TransactionManager
	logger    *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *postgres.RepositoryConfig, txManager repos.TransactionManager) boardRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

// List retrieves every project ordered by board position
func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, title, description, people, status
		FROM %s
		ORDER BY position ASC
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		if postgres.IsPgUndefinedTableError(err) {
			return nil, fmt.Errorf("table %s missing, run the seed command with -schema-only: %w", r.tables.Projects, err)
		}
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var (
			project models.Project
			status  string
		)
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.Description,
			&project.People,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if project.Status, err = models.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("project %s: %w", project.ID, err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// SaveSnapshot upserts the whole board in one transaction and one round
// trip. Only status and position change for rows that already exist.
func (r *PostgresProjectRepository) SaveSnapshot(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	batch := r.snapshotBatch(projects)

	err := r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := postgres.GetExecutor(txCtx, r.pool)
		results := executor.SendBatch(txCtx, batch)
		defer results.Close()

		for _, project := range projects {
			if _, err := results.Exec(); err != nil {
				if postgres.IsPgCheckViolation(err) {
					return fmt.Errorf("project %s: %w", project.ID, domain.ErrValidation)
				}
				return fmt.Errorf("upsert project %s: %w", project.ID, err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return err
	}

	r.logger.Debug("snapshot saved",
		"table", r.tables.Projects,
		"projects", len(projects),
	)
	return nil
}

// snapshotBatch queues one upsert per project; a project's index is its
// board position.
func (r *PostgresProjectRepository) snapshotBatch(projects []models.Project) *pgx.Batch {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, description, people, status, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
			position = EXCLUDED.position,
			updated_at = NOW()
		WHERE %[1]s.status IS DISTINCT FROM EXCLUDED.status
			OR %[1]s.position IS DISTINCT FROM EXCLUDED.position
	`, r.tables.Projects)

	batch := &pgx.Batch{}
	for position, project := range projects {
		batch.Queue(query,
			project.ID,
			project.Title,
			project.Description,
			project.People,
			project.Status.String(),
			position,
		)
	}
	return batch
}
