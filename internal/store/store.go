// Package store holds the board's project sequence and notifies subscribers
// whenever it changes.
//
// Every mutation runs to completion, including the synchronous fan-out to all
// subscribers, before the next mutation starts. Subscribers receive their own
// copy of the full sequence and must not call AddProject or MoveProject from
// inside the callback.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models/board"
)

// Listener receives a snapshot of the board after each change.
type Listener func(projects []board.Project)

// Store is the board's single source of truth.
type Store struct {
	// dispatchMu serialises mutate-and-notify sequences
	dispatchMu sync.Mutex

	mu            sync.RWMutex
	projects      []board.Project
	index         map[string]int
	subscriptions []*Subscription

	newID  func() string
	logger *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store's logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator replaces the UUID generator used for new projects
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		index:  make(map[string]int),
		newID:  func() string { return uuid.New().String() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store, creating it on first use.
// Prefer New and explicit wiring; Default exists for callers that need one
// shared board without plumbing.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = New()
	})
	return defaultStore
}

// AddProject appends a new active project and notifies subscribers.
// Input is not validated here; callers validate before adding.
func (s *Store) AddProject(title, description string, people int) board.Project {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	project := board.Project{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		People:      people,
		Status:      board.StatusActive,
	}

	s.mu.Lock()
	s.index[project.ID] = len(s.projects)
	s.projects = append(s.projects, project)
	subs := s.activeSubscriptions()
	s.mu.Unlock()

	s.logger.Debug("project added",
		"id", project.ID,
		"people", people,
	)

	s.notify(subs)
	return project
}

// MoveProject sets a project's status. It returns false, without notifying,
// when the ID is unknown or the project already has that status.
func (s *Store) MoveProject(id string, status board.ProjectStatus) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	i, ok := s.index[id]
	if !ok || s.projects[i].Status == status {
		s.mu.Unlock()
		return false
	}
	from := s.projects[i].Status
	s.projects[i].Status = status
	subs := s.activeSubscriptions()
	s.mu.Unlock()

	s.logger.Debug("project moved",
		"id", id,
		"from", from.String(),
		"to", status.String(),
	)

	s.notify(subs)
	return true
}

// Hydrate loads persisted projects into an empty store without notifying.
func (s *Store) Hydrate(projects []board.Project) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.projects) > 0 {
		return fmt.Errorf("hydrate non-empty store: %w", domain.ErrConflict)
	}

	index := make(map[string]int, len(projects))
	for i, p := range projects {
		if _, dup := index[p.ID]; dup {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("duplicate project id %s", p.ID),
				ResourceType: "project",
				ResourceID:   p.ID,
			}
		}
		index[p.ID] = i
	}

	s.projects = append([]board.Project(nil), projects...)
	s.index = index
	return nil
}

// Snapshot returns a copy of the board in insertion order
func (s *Store) Snapshot() []board.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyProjects()
}

// Project returns a copy of the project with the given ID
func (s *Store) Project(id string) (board.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return board.Project{}, false
	}
	return s.projects[i], true
}

// Len returns the number of projects on the board
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// notify calls each subscriber with its own snapshot. Caller holds dispatchMu.
func (s *Store) notify(subs []*Subscription) {
	for _, sub := range subs {
		if !sub.active() {
			continue
		}
		sub.fn(s.Snapshot())
	}
}

func (s *Store) copyProjects() []board.Project {
	out := make([]board.Project, len(s.projects))
	copy(out, s.projects)
	return out
}
