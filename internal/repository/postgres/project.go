package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"sitearch/internal/domain"
	"sitearch/internal/domain/models/sitemap"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) sitemapRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *sitemap.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Domain,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("project %q: %w", project.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*sitemap.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, domain, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	var project sitemap.Project
	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Domain,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all projects ordered by creation time
func (r *PostgresProjectRepository) List(ctx context.Context) ([]sitemap.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, domain, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []sitemap.Project
	for rows.Next() {
		var project sitemap.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Domain,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update updates a project
func (r *PostgresProjectRepository) Update(ctx context.Context, project *sitemap.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, domain = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		project.Name,
		project.Domain,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project and all of its pages
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, r.pool)

	pagesQuery := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Pages)
	if _, err := exec.Exec(ctx, pagesQuery, id); err != nil {
		return fmt.Errorf("delete project pages: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
