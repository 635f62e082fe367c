package sitemap

import (
	"context"

	"sitearch/internal/domain/models/sitemap"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name   *string `json:"name,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*sitemap.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id string) (*sitemap.Project, error)

	// ListProjects retrieves all projects
	ListProjects(ctx context.Context) ([]sitemap.Project, error)

	// UpdateProject updates a project's name or domain
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*sitemap.Project, error)

	// DeleteProject removes a project and its pages
	DeleteProject(ctx context.Context, id string) error
}
