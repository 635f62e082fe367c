package sitemap

import (
	"time"
)

type Page struct {
	ID          string    `json:"id" db:"id"`
	ProjectID   string    `json:"project_id" db:"project_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Path        string    `json:"path" db:"path"`           // Full URL path, always starts with "/"
	OrderKey    int       `json:"order_key" db:"order_key"` // Position among siblings, 0-based after renormalization
	Depth       int       `json:"depth" db:"depth"`         // 0..3, clamped for deeply nested pages
	Icon        *string   `json:"icon,omitempty" db:"icon"` // NULL = inherited from nearest ancestor for display
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Keyword     string    `json:"keyword,omitempty" db:"keyword"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsHome reports whether this page is the singular root page at "/".
func (p *Page) IsHome() bool {
	return p.Path == "/"
}
