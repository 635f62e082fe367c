package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitearch/internal/config"
	"sitearch/internal/domain"
	models "sitearch/internal/domain/models/sitemap"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo sitemapRepo.ProjectRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo sitemapRepo.ProjectRepository, logger *slog.Logger) sitemapSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *sitemapSvc.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project := &models.Project{
		Name:      strings.TrimSpace(req.Name),
		Domain:    strings.TrimRight(strings.TrimSpace(req.Domain), "/"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"domain", project.Domain,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves all projects
func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

// UpdateProject updates a project's name or domain
func (s *projectService) UpdateProject(ctx context.Context, id string, req *sitemapSvc.UpdateProjectRequest) (*models.Project, error) {
	if req.Name == nil && req.Domain == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxProjectNameLength)); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		project.Name = name
	}
	if req.Domain != nil {
		project.Domain = strings.TrimRight(strings.TrimSpace(*req.Domain), "/")
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "name", project.Name)

	return project, nil
}

// DeleteProject removes a project and its pages
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

// validateCreateRequest validates a project creation request
func (s *projectService) validateCreateRequest(req *sitemapSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
	)
}
