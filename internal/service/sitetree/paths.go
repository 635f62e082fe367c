package sitetree

import (
	"strings"

	"sitearch/internal/domain/models/sitemap"
)

// RootMarker is the slug sentinel for the singular home page. A page
// whose path reduces to it is never rewritten.
const RootMarker = "/"

// Slug returns the last non-empty segment of a path. A path with no
// segments (the home page's "/", or an empty string) yields RootMarker.
func Slug(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return RootMarker
}

// ChildPath joins a parent path and a slug into a child path. A nil or
// root parent produces a top-level "/<slug>" path.
func ChildPath(parentPath, slug string) string {
	if parentPath == "" || parentPath == RootMarker {
		return "/" + slug
	}
	return strings.TrimRight(parentPath, "/") + "/" + slug
}

// RewritePaths recomputes each node's path as its new parent's path
// plus its own slug, then recurses into children using the node's
// freshly computed path as their base. The walk is top-down because a
// child's path depends on the parent's already-updated one. The home
// page ("/") keeps its path fixed wherever it appears.
func RewritePaths(nodes []*sitemap.PageTreeNode, newParentPath *string) {
	for _, n := range nodes {
		if slug := Slug(n.Path); slug != RootMarker {
			if newParentPath == nil {
				n.Path = "/" + slug
			} else {
				n.Path = ChildPath(*newParentPath, slug)
			}
		}
		base := n.Path
		RewritePaths(n.Children, &base)
	}
}

// DisplayName renders a page's own path segment for navigation and
// export fields, with hyphens replaced by spaces.
func DisplayName(path string) string {
	return strings.ReplaceAll(Slug(path), "-", " ")
}
