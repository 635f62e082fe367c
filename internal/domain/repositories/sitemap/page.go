package sitemap

import (
	"context"

	"sitearch/internal/domain/models/sitemap"
)

// PageRepository defines data access operations for pages
type PageRepository interface {
	// Create creates a new page
	Create(ctx context.Context, page *sitemap.Page) error

	// GetByID retrieves a page by ID
	GetByID(ctx context.Context, id, projectID string) (*sitemap.Page, error)

	// GetByPath retrieves a page by its full path within a project
	GetByPath(ctx context.Context, projectID, path string) (*sitemap.Page, error)

	// Update updates a page's fields
	Update(ctx context.Context, page *sitemap.Page) error

	// Delete removes a page. Children are left in place; their dangling
	// parent references are handled by the tree builder (orphan-as-root).
	Delete(ctx context.Context, id, projectID string) error

	// ListChildren lists the immediate children of a page (nil = roots),
	// ordered by order key
	ListChildren(ctx context.Context, parentID *string, projectID string) ([]sitemap.Page, error)

	// GetAllByProject retrieves all pages in a project as a flat list
	GetAllByProject(ctx context.Context, projectID string) ([]sitemap.Page, error)

	// ApplyLayout durably applies a flattened tree (parent, order key,
	// depth and path per page) as a single logical unit. Callers wrap
	// it in a transaction so a partial layout is never visible.
	ApplyLayout(ctx context.Context, projectID string, entries []sitemap.FlatEntry) error
}
