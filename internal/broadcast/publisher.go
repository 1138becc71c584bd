// Package broadcast forwards board snapshots to Redis so other processes can
// follow the board without sharing the store.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"projectboard/internal/domain/models/board"
)

// Message is the payload stored and published for each snapshot
type Message struct {
	Projects    []board.Project `json:"projects"`
	PublishedAt time.Time       `json:"published_at"`
}

// Publisher writes each snapshot to <channel>:latest and publishes it on channel.
type Publisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublisher creates a snapshot publisher
func NewPublisher(client *redis.Client, channel string, timeout time.Duration, logger *slog.Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// LatestKey is the key holding the most recent snapshot
func (p *Publisher) LatestKey() string {
	return p.channel + ":latest"
}

// Publish is a store listener. Failures are logged, never returned.
func (p *Publisher) Publish(projects []board.Project) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.PublishContext(ctx, projects); err != nil {
		p.logger.Error("snapshot broadcast failed",
			"channel", p.channel,
			"projects", len(projects),
			"error", err,
		)
	}
}

// PublishContext stores and publishes one snapshot in a single pipeline
func (p *Publisher) PublishContext(ctx context.Context, projects []board.Project) error {
	payload, err := json.Marshal(Message{Projects: projects, PublishedAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Set(ctx, p.LatestKey(), payload, 0)
	pipe.Publish(ctx, p.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	p.logger.Debug("snapshot broadcast",
		"channel", p.channel,
		"projects", len(projects),
	)
	return nil
}
