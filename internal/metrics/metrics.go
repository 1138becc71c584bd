package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"projectboard/internal/domain/models/board"
)

type Metrics struct {
	Projects        *prometheus.GaugeVec
	ProjectsCreated prometheus.Counter
	ProjectsMoved   *prometheus.CounterVec
	Notifications   prometheus.Counter
}

// New registers the board metrics with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Projects: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "board_projects",
			Help: "Current number of projects on the board by status",
		}, []string{"status"}),
		ProjectsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "board_projects_created_total",
			Help: "Total number of projects added to the board",
		}),
		ProjectsMoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "board_projects_moved_total",
			Help: "Total number of status changes, by target status",
		}, []string{"status"}),
		Notifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "board_snapshot_notifications_total",
			Help: "Total number of board snapshots observed",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.ProjectsCreated.Inc()
}

func (m *Metrics) IncrementMoved(status board.ProjectStatus) {
	m.ProjectsMoved.WithLabelValues(status.String()).Inc()
}

// Observe is a store listener that refreshes the per-status gauges
func (m *Metrics) Observe(projects []board.Project) {
	m.Notifications.Inc()
	m.SetProjects(projects)
}

// SetProjects sets the per-status gauges from a full board
func (m *Metrics) SetProjects(projects []board.Project) {
	counts := make(map[board.ProjectStatus]int, len(board.Statuses))
	for _, p := range projects {
		counts[p.Status]++
	}
	for _, status := range board.Statuses {
		m.Projects.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}
