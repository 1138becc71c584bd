package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	models "projectboard/internal/domain/models/board"
	boardRepo "projectboard/internal/domain/repositories/board"
	boardSvc "projectboard/internal/domain/services/board"
	"projectboard/internal/store"
)

//go:embed fixtures/projects.yaml
var defaultFixtures []byte

// fixture is one seeded project; Status is applied after creation
type fixture struct {
	boardSvc.CreateProjectRequest `yaml:",inline"`
	Status                        string `yaml:"status"`
}

type fixtureFile struct {
	Projects []fixture `yaml:"projects"`
}

func parseFixtures(data []byte) ([]fixture, error) {
	var file fixtureFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	for i, f := range file.Projects {
		if f.Status == "" {
			continue
		}
		if _, err := models.ParseStatus(f.Status); err != nil {
			return nil, fmt.Errorf("fixture %d (%s): %w", i+1, f.Title, err)
		}
	}

	return file.Projects, nil
}

// seedBoard creates every fixture through the board service. Invalid entries
// are logged and skipped; the count of created projects is returned.
func seedBoard(ctx context.Context, svc boardSvc.ProjectService, fixtures []fixture, logger *slog.Logger) int {
	created := 0
	for i, f := range fixtures {
		req := f.CreateProjectRequest
		project, err := svc.CreateProject(ctx, &req)
		if err != nil {
			logger.Warn("fixture skipped",
				"index", i+1,
				"title", f.Title,
				"error", err,
			)
			continue
		}

		if f.Status != "" {
			if _, err := svc.MoveProject(ctx, project.ID, &boardSvc.MoveProjectRequest{Status: f.Status}); err != nil {
				logger.Warn("fixture status not applied",
					"id", project.ID,
					"status", f.Status,
					"error", err,
				)
			}
		}

		created++
		logger.Info("project seeded",
			"index", i+1,
			"total", len(fixtures),
			"id", project.ID,
			"title", project.Title,
		)
	}
	return created
}

// persistBoard writes the seeded board in one snapshot. Unlike the server's
// persister, a failed write is returned so the command can exit non-zero.
func persistBoard(ctx context.Context, repo boardRepo.ProjectRepository, st *store.Store) error {
	if err := repo.SaveSnapshot(ctx, st.Snapshot()); err != nil {
		return fmt.Errorf("save seeded board: %w", err)
	}
	return nil
}
