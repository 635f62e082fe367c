package sitetree

import (
	"sitearch/internal/domain/models/sitemap"
)

// PageNav is a page augmented with breadcrumb-style navigation fields
// derived from its ancestor chain, for flat display and export.
type PageNav struct {
	sitemap.Page
	NavI   string `json:"nav_i"`
	NavII  string `json:"nav_ii"`
	NavIII string `json:"nav_iii"`
}

// Nav derives the Nav I/II/III fields for every page. The ancestor
// chain is read root-first: Nav I is the display name of the first
// ancestor (or of the page itself when it has none), Nav II the second
// ancestor's (falling back to the page's own name once it has at least
// one ancestor), Nav III analogous at the third level. The computation
// is stateless per page and only needs the ancestor chain.
func Nav(pages []sitemap.Page) []PageNav {
	byID := make(map[string]sitemap.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}

	out := make([]PageNav, 0, len(pages))
	for _, p := range pages {
		chain := ancestorChain(p, byID)
		own := DisplayName(p.Path)

		nav := PageNav{Page: p}

		if len(chain) >= 1 {
			nav.NavI = DisplayName(chain[0].Path)
		} else {
			nav.NavI = own
		}
		if len(chain) >= 2 {
			nav.NavII = DisplayName(chain[1].Path)
		} else if len(chain) >= 1 {
			nav.NavII = own
		}
		if len(chain) >= 3 {
			nav.NavIII = DisplayName(chain[2].Path)
		} else if len(chain) >= 2 {
			nav.NavIII = own
		}

		out = append(out, nav)
	}
	return out
}

// ancestorChain collects a page's ancestors ordered root-first. The
// chain ends at a root, a dangling parent, or a revisited ID (cycle
// guard).
func ancestorChain(p sitemap.Page, byID map[string]sitemap.Page) []sitemap.Page {
	var chain []sitemap.Page
	visited := map[string]bool{p.ID: true}

	cur := p.ParentID
	for cur != nil {
		ancestor, exists := byID[*cur]
		if !exists || visited[ancestor.ID] {
			break
		}
		visited[ancestor.ID] = true
		chain = append(chain, ancestor)
		cur = ancestor.ParentID
	}

	// Walked parent-first; flip to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
