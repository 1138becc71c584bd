package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"projectboard/internal/auth"
	"projectboard/internal/broadcast"
	"projectboard/internal/config"
	boardRepo "projectboard/internal/domain/repositories/board"
	"projectboard/internal/handler/sse"
	"projectboard/internal/metrics"
	"projectboard/internal/repository/memory"
	"projectboard/internal/repository/postgres"
	postgresBoard "projectboard/internal/repository/postgres/board"
	serviceBoard "projectboard/internal/service/board"
	"projectboard/internal/store"
	formrules "projectboard/internal/validation"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := config.NewLogger(cfg.Debug, logOutput)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"persistence", cfg.DatabaseURL != "",
		"broadcast", cfg.RedisURL != "",
		"auth", cfg.AuthJWKSURL != "",
	)

	st := store.New(store.WithLogger(logger))

	// Persistence: Postgres when configured, otherwise the board lives in memory
	var projectRepo boardRepo.ProjectRepository = memory.NewProjectRepository()
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("create connection pool: %w", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		txManager := postgres.NewTransactionManager(pool, logger)
		projectRepo = postgresBoard.NewProjectRepository(repoConfig, txManager)

		logger.Info("database connected", "table", tables.Projects)
	}

	restored, err := serviceBoard.Restore(ctx, projectRepo, st)
	if err != nil {
		return fmt.Errorf("restore board: %w", err)
	}
	logger.Info("board restored", "projects", restored)

	st.Subscribe(serviceBoard.NewSnapshotPersister(projectRepo, cfg.PersistTimeout, logger))

	// Metrics get their own registry so /metrics only shows this process
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	boardMetrics := metrics.New(registry)
	boardMetrics.SetProjects(st.Snapshot())
	st.Subscribe(boardMetrics.Observe)

	redisClient, err := broadcast.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		publisher := broadcast.NewPublisher(redisClient, cfg.RedisChannel, cfg.PersistTimeout, logger)
		st.Subscribe(publisher.Publish)
		logger.Info("snapshot broadcast enabled", "channel", cfg.RedisChannel)
	}

	var verifier auth.JWTVerifier
	if cfg.AuthJWKSURL != "" {
		verifier, err = auth.NewJWTVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			return fmt.Errorf("create JWT verifier: %w", err)
		}
		defer verifier.Close()
	} else {
		logger.Warn("AUTH_JWKS_URL not set, API is unauthenticated")
	}

	rules, err := formrules.DefaultFormRules()
	if err != nil {
		return fmt.Errorf("load form rules: %w", err)
	}
	projectService := serviceBoard.NewProjectService(st, rules, boardMetrics, logger)

	logger.Info("services initialized")

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(routerDeps{
			store:       st,
			service:     projectService,
			gatherer:    registry,
			verifier:    verifier,
			sseConfig:   sse.NewConfig(cfg.SSEKeepAlive),
			corsOrigins: cfg.CORSOrigins,
			logger:      logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
		// Request contexts end on shutdown so open streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
