package handler

import (
	models "projectboard/internal/domain/models/board"
)

// ProjectView is the wire shape of a project card
type ProjectView struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	People      int                  `json:"people"`
	Persons     string               `json:"persons"`
	Status      models.ProjectStatus `json:"status"`
}

func newProjectView(p models.Project) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		People:      p.People,
		Persons:     p.PersonsLabel(),
		Status:      p.Status,
	}
}

// newProjectViews renders a board column; never nil so it encodes as []
func newProjectViews(projects []models.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, newProjectView(p))
	}
	return views
}
