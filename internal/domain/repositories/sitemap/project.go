package sitemap

import (
	"context"

	"sitearch/internal/domain/models/sitemap"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *sitemap.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*sitemap.Project, error)

	// List retrieves all projects ordered by creation time
	List(ctx context.Context) ([]sitemap.Project, error)

	// Update updates a project
	Update(ctx context.Context, project *sitemap.Project) error

	// Delete removes a project and all of its pages
	Delete(ctx context.Context, id string) error
}
