package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"projectboard/internal/config"
	"projectboard/internal/repository/postgres"
	postgresBoard "projectboard/internal/repository/postgres/board"
	serviceBoard "projectboard/internal/service/board"
	"projectboard/internal/store"
	formrules "projectboard/internal/validation"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop the board tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed projects")
	fixturesFile := flag.String("file", "", "YAML fixtures to load instead of the built-in demo board")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run -drop-tables in production environment")
	}

	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required for seeding")
	}

	logger := config.NewLogger(cfg.Debug, os.Stdout)

	fixtures := defaultFixtures
	if *fixturesFile != "" {
		data, err := os.ReadFile(*fixturesFile)
		if err != nil {
			log.Fatalf("Failed to read fixtures: %v", err)
		}
		fixtures = data
	}

	projects, err := parseFixtures(fixtures)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	logger.Info("seeding board",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"fixtures", len(projects),
	)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		logger.Info("tables dropped", "table", tables.Projects)
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	logger.Info("schema ready", "table", tables.Projects)

	if *schemaOnly {
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	txManager := postgres.NewTransactionManager(pool, logger)
	projectRepo := postgresBoard.NewProjectRepository(repoConfig, txManager)

	// Seeded projects are appended after whatever the board already holds
	st := store.New(store.WithLogger(logger))
	existing, err := serviceBoard.Restore(ctx, projectRepo, st)
	if err != nil {
		log.Fatalf("Failed to load existing board: %v", err)
	}

	rules, err := formrules.DefaultFormRules()
	if err != nil {
		log.Fatalf("Failed to load form rules: %v", err)
	}
	svc := serviceBoard.NewProjectService(st, rules, nil, logger)

	created := seedBoard(ctx, svc, projects, logger)

	saveCtx, cancel := context.WithTimeout(ctx, cfg.PersistTimeout)
	defer cancel()
	if err := persistBoard(saveCtx, projectRepo, st); err != nil {
		log.Fatalf("Failed to persist seeded board: %v", err)
	}

	logger.Info("seeding complete",
		"existing", existing,
		"created", created,
		"skipped", len(projects)-created,
	)
}
