package board

import (
	"fmt"
	"strings"
)

// ProjectStatus is the board column a project sits in.
type ProjectStatus int

const (
	StatusActive ProjectStatus = iota
	StatusFinished
)

// Statuses lists every status in board order.
var Statuses = []ProjectStatus{StatusActive, StatusFinished}

// String returns the wire name of the status ("active", "finished").
func (s ProjectStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s ProjectStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusActive, StatusFinished:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown project status %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *ProjectStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a status name, case-insensitively.
func ParseStatus(name string) (ProjectStatus, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "active":
		return StatusActive, nil
	case "finished":
		return StatusFinished, nil
	default:
		return 0, fmt.Errorf("unknown project status %q", name)
	}
}

// Project is one unit of work on the board.
// ID is assigned by the store and never changes; only Status is mutable.
type Project struct {
	ID          string        `json:"id" db:"id" yaml:"id"`
	Title       string        `json:"title" db:"title" yaml:"title"`
	Description string        `json:"description" db:"description" yaml:"description"`
	People      int           `json:"people" db:"people" yaml:"people"`
	Status      ProjectStatus `json:"status" db:"status" yaml:"status"`
}

// PersonsLabel renders the headcount for display ("1 person", "3 persons").
func (p Project) PersonsLabel() string {
	if p.People == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d persons", p.People)
}

// FilterByStatus returns the projects with the given status, preserving order.
func FilterByStatus(projects []Project, status ProjectStatus) []Project {
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == status {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
