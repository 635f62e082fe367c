package sitetree

import (
	"sitearch/internal/domain/models/sitemap"
)

// IconMap resolves the effective icon for every page. A page with its
// own icon reports it directly; otherwise the nearest ancestor's
// effective icon is inherited. Pages with no icon anywhere on their
// ancestor chain are absent from the result. Resolution is memoized
// across the collection (an empty string caches a resolved miss) so the
// whole map costs O(n) rather than O(n * depth), and a visited set
// keeps malformed parent cycles from looping (a cycle resolves to no
// inherited icon).
func IconMap(pages []sitemap.Page) map[string]string {
	byID := make(map[string]sitemap.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}

	cache := make(map[string]string, len(pages))

	var resolve func(id string, visited map[string]bool) string
	resolve = func(id string, visited map[string]bool) string {
		if v, ok := cache[id]; ok {
			return v
		}
		if visited[id] {
			return ""
		}
		visited[id] = true

		p, exists := byID[id]
		if !exists {
			return ""
		}

		v := ""
		if p.Icon != nil && *p.Icon != "" {
			v = *p.Icon
		} else if p.ParentID != nil {
			v = resolve(*p.ParentID, visited)
		}
		cache[id] = v
		return v
	}

	icons := make(map[string]string)
	for _, p := range pages {
		if v := resolve(p.ID, make(map[string]bool)); v != "" {
			icons[p.ID] = v
		}
	}
	return icons
}
