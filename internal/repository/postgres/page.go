package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"sitearch/internal/domain"
	"sitearch/internal/domain/models/sitemap"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
)

// PostgresPageRepository implements the PageRepository interface
type PostgresPageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPageRepository creates a new page repository
func NewPageRepository(config *RepositoryConfig) sitemapRepo.PageRepository {
	return &PostgresPageRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const pageColumns = `id, project_id, parent_id, path, order_key, depth, icon, title, description, keyword, notes, created_at, updated_at`

// Create creates a new page
func (r *PostgresPageRepository) Create(ctx context.Context, page *sitemap.Page) error {
	if page.ID == "" {
		page.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Pages, pageColumns)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		page.ID,
		page.ProjectID,
		page.ParentID,
		page.Path,
		page.OrderKey,
		page.Depth,
		page.Icon,
		page.Title,
		page.Description,
		page.Keyword,
		page.Notes,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("page %q: %w", page.Path, domain.ErrConflict)
		}
		// The only FK on pages is project_id
		if IsPgForeignKeyError(err) {
			return &domain.NotFoundError{Resource: "project", ID: page.ProjectID}
		}
		return fmt.Errorf("create page: %w", err)
	}

	return nil
}

// GetByID retrieves a page by ID
func (r *PostgresPageRepository) GetByID(ctx context.Context, id, projectID string) (*sitemap.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	page, err := scanPage(exec.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page: %w", err)
	}
	return page, nil
}

// GetByPath retrieves a page by its full path within a project
func (r *PostgresPageRepository) GetByPath(ctx context.Context, projectID, path string) (*sitemap.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND path = $2
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	page, err := scanPage(exec.QueryRow(ctx, query, projectID, path))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("page %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get page by path: %w", err)
	}
	return page, nil
}

// Update updates a page's fields
func (r *PostgresPageRepository) Update(ctx context.Context, page *sitemap.Page) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, path = $2, order_key = $3, depth = $4, icon = $5,
		    title = $6, description = $7, keyword = $8, notes = $9, updated_at = $10
		WHERE id = $11 AND project_id = $12
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		page.ParentID,
		page.Path,
		page.OrderKey,
		page.Depth,
		page.Icon,
		page.Title,
		page.Description,
		page.Keyword,
		page.Notes,
		page.UpdatedAt,
		page.ID,
		page.ProjectID,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("page %q: %w", page.Path, domain.ErrConflict)
		}
		return fmt.Errorf("update page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", page.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a page. Children keep their parent_id; the tree
// builder treats them as roots until they are re-parented.
func (r *PostgresPageRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists the immediate children of a page, ordered by
// order key. A nil parentID lists root-level pages.
func (r *PostgresPageRepository) ListChildren(ctx context.Context, parentID *string, projectID string) ([]sitemap.Page, error) {
	var query string
	var args []interface{}
	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND parent_id IS NULL
			ORDER BY order_key ASC
		`, pageColumns, r.tables.Pages)
		args = []interface{}{projectID}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND parent_id = $2
			ORDER BY order_key ASC
		`, pageColumns, r.tables.Pages)
		args = []interface{}{projectID, *parentID}
	}

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	return collectPages(rows)
}

// GetAllByProject retrieves all pages in a project as a flat list
func (r *PostgresPageRepository) GetAllByProject(ctx context.Context, projectID string) ([]sitemap.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY depth ASC, order_key ASC
	`, pageColumns, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("get all pages: %w", err)
	}
	defer rows.Close()

	return collectPages(rows)
}

// ApplyLayout applies a flattened tree to the project's pages. Run it
// inside a transaction so a partial layout is never visible.
func (r *PostgresPageRepository) ApplyLayout(ctx context.Context, projectID string, entries []sitemap.FlatEntry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, order_key = $2, depth = $3, path = $4, updated_at = $5
		WHERE id = $6 AND project_id = $7
	`, r.tables.Pages)

	exec := GetExecutor(ctx, r.pool)
	now := time.Now()
	for _, e := range entries {
		if _, err := exec.Exec(ctx, query,
			e.ParentID,
			e.OrderKey,
			e.Depth,
			e.Path,
			now,
			e.ID,
			projectID,
		); err != nil {
			return fmt.Errorf("apply layout for page %s: %w", e.ID, err)
		}
	}

	return nil
}

// pgxRow matches both pgx.Row and pgx.Rows for shared scanning
type pgxRow interface {
	Scan(dest ...interface{}) error
}

func scanPage(row pgxRow) (*sitemap.Page, error) {
	var page sitemap.Page
	err := row.Scan(
		&page.ID,
		&page.ProjectID,
		&page.ParentID,
		&page.Path,
		&page.OrderKey,
		&page.Depth,
		&page.Icon,
		&page.Title,
		&page.Description,
		&page.Keyword,
		&page.Notes,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func collectPages(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]sitemap.Page, error) {
	var pages []sitemap.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}
