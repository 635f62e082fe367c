package sitemap

import (
	"context"

	"sitearch/internal/domain/models/sitemap"
	"sitearch/internal/service/sitetree"
)

// TreeService defines operations over a project's site architecture
// tree: building it for display, applying structural moves, and undoing
// them.
type TreeService interface {
	// GetTree builds and returns the nested page tree for a project
	GetTree(ctx context.Context, projectID string) ([]*sitemap.PageTreeNode, error)

	// MovePages relocates the given pages under a target parent at the
	// given position, persists the flattened result, and returns the new
	// tree. A move whose target parent does not survive extraction is
	// declined with domain.ErrMoveDeclined.
	MovePages(ctx context.Context, projectID string, req *MovePagesRequest) ([]*sitemap.PageTreeNode, error)

	// UndoMove restores the most recent pre-move snapshot and persists
	// it. With no snapshots recorded it returns the current tree
	// unchanged.
	UndoMove(ctx context.Context, projectID string) ([]*sitemap.PageTreeNode, error)

	// Annotations returns the read-side projections display collaborators
	// consume: pillar colors, effective icons and navigation fields.
	Annotations(ctx context.Context, projectID string) (*TreeAnnotations, error)
}

// MovePagesRequest represents a structural move of one or more pages
type MovePagesRequest struct {
	PageIDs  []string `json:"page_ids"`
	ParentID *string  `json:"parent_id"` // null = root level
	Position int      `json:"position"`
}

// TreeAnnotations bundles the derived, non-stored groupings for a
// project's pages.
type TreeAnnotations struct {
	Colors map[string]string  `json:"colors"` // page ID -> pillar cluster color
	Icons  map[string]string  `json:"icons"`  // page ID -> effective (possibly inherited) icon
	Nav    []sitetree.PageNav `json:"nav"`    // pages with Nav I/II/III derived
}
