package database

import (
	"context"

	"github.com/kdpii/nerlabel/internal/models"
)

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*models.Project, error)
	CountProjects(ctx context.Context) (int, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	CreateProject(ctx context.Context, p *models.Project) error
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int) error
}

// ProjectRepository combines all project-related operations.
type ProjectRepository interface {
	ProjectReader
	ProjectWriter
}
