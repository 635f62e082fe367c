package sitetree

import (
	"sort"

	"sitearch/internal/config"
	"sitearch/internal/domain/models/sitemap"
)

// Build converts a flat page collection into a nested tree. Pages are
// grouped by parent ID and every sibling list is sorted ascending by
// order key. Pages whose declared parent is absent from the collection
// are promoted to roots (orphan-as-root policy), and pages sitting on a
// parent cycle are promoted as well so malformed input can never make
// the build loop.
func Build(pages []sitemap.Page) []*sitemap.PageTreeNode {
	nodes := make(map[string]*sitemap.PageTreeNode, len(pages))
	for i := range pages {
		nodes[pages[i].ID] = &sitemap.PageTreeNode{
			Page:     pages[i],
			Children: []*sitemap.PageTreeNode{},
		}
	}

	cyclic := findCycleMembers(pages)

	roots := make([]*sitemap.PageTreeNode, 0)
	for i := range pages {
		node := nodes[pages[i].ID]
		parentID := pages[i].ParentID

		if parentID == nil || cyclic[pages[i].ID] {
			roots = append(roots, node)
			continue
		}

		parent, exists := nodes[*parentID]
		if !exists {
			// Orphan: declared parent is gone, show it at the top level
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots)
	return roots
}

// Flatten performs a pre-order walk over the tree, emitting the
// canonical flat tuple per page. Order keys are renormalized to the
// 0-based position within each sibling list and depth is recomputed
// from actual tree position, clamped to config.MaxPageDepth.
func Flatten(tree []*sitemap.PageTreeNode) []sitemap.FlatEntry {
	entries := make([]sitemap.FlatEntry, 0)

	var walk func(nodes []*sitemap.PageTreeNode, parentID *string, depth int)
	walk = func(nodes []*sitemap.PageTreeNode, parentID *string, depth int) {
		for i, node := range nodes {
			clamped := depth
			if clamped > config.MaxPageDepth {
				clamped = config.MaxPageDepth
			}
			entries = append(entries, sitemap.FlatEntry{
				ID:       node.ID,
				ParentID: parentID,
				OrderKey: i,
				Depth:    clamped,
				Path:     node.Path,
			})

			id := node.ID
			walk(node.Children, &id, depth+1)
		}
	}
	walk(tree, nil, 0)

	return entries
}

// SortForDisplay reorders a flat collection into the tree's pre-order
// display order, the same order Flatten emits.
func SortForDisplay(pages []sitemap.Page) []sitemap.Page {
	byID := make(map[string]sitemap.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}
	out := make([]sitemap.Page, 0, len(pages))
	for _, e := range Flatten(Build(pages)) {
		out = append(out, byID[e.ID])
	}
	return out
}

// Clone deep-copies a tree. Structural edits always operate on a copy
// so the caller's tree is never mutated in place.
func Clone(nodes []*sitemap.PageTreeNode) []*sitemap.PageTreeNode {
	if nodes == nil {
		return nil
	}
	out := make([]*sitemap.PageTreeNode, len(nodes))
	for i, n := range nodes {
		c := *n
		c.Children = Clone(n.Children)
		out[i] = &c
	}
	return out
}

// findCycleMembers returns the IDs of pages that sit on a parent cycle.
// Each page's ancestor chain is walked at most once: a chain ending at
// a root or a missing parent anchors everything on it, while a chain
// that revisits one of its own members marks the loop segment cyclic.
func findCycleMembers(pages []sitemap.Page) map[string]bool {
	parents := make(map[string]*string, len(pages))
	for i := range pages {
		parents[pages[i].ID] = pages[i].ParentID
	}

	const (
		stateAnchored = 1
		stateCyclic   = 2
	)
	state := make(map[string]int, len(pages))

	for id := range parents {
		if state[id] != 0 {
			continue
		}

		var path []string
		onPath := make(map[string]int)
		cur := id
		resolved := false

		for {
			if s := state[cur]; s != 0 {
				// Chain reaches an already-classified page; everything
				// walked so far hangs off it and is anchored either way
				// (cycle members get promoted to roots downstream).
				break
			}
			if pos, seen := onPath[cur]; seen {
				for _, cid := range path[pos:] {
					state[cid] = stateCyclic
				}
				for _, cid := range path[:pos] {
					state[cid] = stateAnchored
				}
				resolved = true
				break
			}

			onPath[cur] = len(path)
			path = append(path, cur)

			parentID := parents[cur]
			if parentID == nil {
				break
			}
			if _, exists := parents[*parentID]; !exists {
				// Dangling parent ends the chain; the orphan anchors it
				break
			}
			cur = *parentID
		}

		if !resolved {
			for _, cid := range path {
				state[cid] = stateAnchored
			}
		}
	}

	cyclic := make(map[string]bool)
	for id, s := range state {
		if s == stateCyclic {
			cyclic[id] = true
		}
	}
	return cyclic
}

// sortSiblings sorts every sibling list ascending by order key. The
// sort is stable so input order breaks ties deterministically.
func sortSiblings(nodes []*sitemap.PageTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].OrderKey < nodes[j].OrderKey
	})
	for _, n := range nodes {
		sortSiblings(n.Children)
	}
}
