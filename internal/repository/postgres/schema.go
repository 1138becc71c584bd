package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the board tables if they do not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id          TEXT PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			people      INTEGER NOT NULL,
			status      TEXT NOT NULL CHECK (status IN ('active', 'finished')),
			position    INTEGER NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_position_idx ON %[1]s (position)`, tables.Projects),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", tables.Projects, err)
		}
	}
	return nil
}

// DropTables removes the board tables
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Projects)); err != nil {
		return fmt.Errorf("drop %s: %w", tables.Projects, err)
	}
	return nil
}
