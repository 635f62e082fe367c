package sitemap

import (
	"context"

	"sitearch/internal/domain/models/sitemap"
	"sitearch/internal/httputil"
)

// PageService handles page business logic
type PageService interface {
	// CreatePage creates a new page, appended to the end of its target
	// sibling set
	CreatePage(ctx context.Context, req *CreatePageRequest) (*sitemap.Page, error)

	// GetPage retrieves a page by ID
	GetPage(ctx context.Context, id, projectID string) (*sitemap.Page, error)

	// UpdatePage updates a page's descriptive fields, icon or slug. A
	// slug change cascades to descendant paths.
	UpdatePage(ctx context.Context, id string, req *UpdatePageRequest) (*sitemap.Page, error)

	// DeletePage removes a page; its children become orphans and are
	// shown at the top level until re-parented
	DeletePage(ctx context.Context, id, projectID string) error

	// ListPages lists all pages in a project in display (pre-order) order
	ListPages(ctx context.Context, projectID string) ([]sitemap.Page, error)
}

// CreatePageRequest represents a page creation request
type CreatePageRequest struct {
	ProjectID   string  `json:"project_id"`
	ParentID    *string `json:"parent_id,omitempty"` // null for root level
	Slug        string  `json:"slug"`                // own path segment; "/" creates the home page
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Keyword     string  `json:"keyword,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// UpdatePageRequest represents a page update request. Icon uses
// tri-state PATCH semantics: absent = keep, null = clear (fall back to
// inherited), value = set.
type UpdatePageRequest struct {
	ProjectID   string                  `json:"project_id"`
	Title       *string                 `json:"title,omitempty"`
	Slug        *string                 `json:"slug,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Keyword     *string                 `json:"keyword,omitempty"`
	Notes       *string                 `json:"notes,omitempty"`
	Icon        httputil.OptionalString `json:"icon,omitempty"`
}
