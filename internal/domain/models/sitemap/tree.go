package sitemap

// PageTreeNode represents a page in the nested tree with its children
// sorted in display order.
type PageTreeNode struct {
	Page
	Children []*PageTreeNode `json:"children"`
}

// FlatEntry is the canonical flat tuple persisted back after a structural
// edit. OrderKey is the 0-based position within the parent's children and
// Depth is recomputed from actual tree position.
type FlatEntry struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
	OrderKey int     `json:"order_key"`
	Depth    int     `json:"depth"`
	Path     string  `json:"path"`
}
