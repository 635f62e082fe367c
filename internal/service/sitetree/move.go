package sitetree

import (
	"sitearch/internal/config"
	"sitearch/internal/domain/models/sitemap"
)

// Move relocates the subtrees rooted at ids to the children of
// targetParentID (nil targets the root list), inserting them as a
// contiguous run starting at index. Each extracted subtree keeps its
// internal structure, and the moved subtrees keep the relative order of
// ids. The index is clamped to the valid range; paths and depths of the
// moved subtrees are recomputed from the new position.
//
// Move never mutates the input tree. When none of the ids exist, or the
// target parent is gone once the subtrees are extracted (including a
// target inside an extracted subtree), the original tree is returned
// unchanged with ok == false.
func Move(tree []*sitemap.PageTreeNode, ids []string, targetParentID *string, index int) (result []*sitemap.PageTreeNode, ok bool) {
	work := Clone(tree)

	moved := make([]*sitemap.PageTreeNode, 0, len(ids))
	for _, id := range ids {
		if node := extract(&work, id); node != nil {
			moved = append(moved, node)
		}
	}
	if len(moved) == 0 {
		return tree, false
	}

	if targetParentID == nil {
		work = insertAt(work, moved, index)
		for _, n := range moved {
			n.ParentID = nil
		}
		RewritePaths(moved, nil)
		setDepths(moved, 0)
		return work, true
	}

	target := Find(work, *targetParentID)
	if target == nil {
		// Target vanished with an extracted subtree; leave the tree untouched
		return tree, false
	}

	target.Children = insertAt(target.Children, moved, index)
	for _, n := range moved {
		id := target.ID
		n.ParentID = &id
	}
	parentPath := target.Path
	RewritePaths(moved, &parentPath)
	setDepths(moved, target.Depth+1)

	return work, true
}

// extract removes the subtree rooted at id from the forest, returning
// it (or nil when absent).
func extract(nodes *[]*sitemap.PageTreeNode, id string) *sitemap.PageTreeNode {
	for i, n := range *nodes {
		if n.ID == id {
			rest := make([]*sitemap.PageTreeNode, 0, len(*nodes)-1)
			rest = append(rest, (*nodes)[:i]...)
			rest = append(rest, (*nodes)[i+1:]...)
			*nodes = rest
			return n
		}
		if found := extract(&n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Find returns the node with the given id, searching depth-first, or
// nil when absent.
func Find(nodes []*sitemap.PageTreeNode, id string) *sitemap.PageTreeNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// insertAt splices the moved run into list at index, clamped to
// [0, len(list)].
func insertAt(list, moved []*sitemap.PageTreeNode, index int) []*sitemap.PageTreeNode {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	out := make([]*sitemap.PageTreeNode, 0, len(list)+len(moved))
	out = append(out, list[:index]...)
	out = append(out, moved...)
	out = append(out, list[index:]...)
	return out
}

// setDepths recomputes depth for the subtrees, clamping at
// config.MaxPageDepth.
func setDepths(nodes []*sitemap.PageTreeNode, depth int) {
	clamped := depth
	if clamped > config.MaxPageDepth {
		clamped = config.MaxPageDepth
	}
	for _, n := range nodes {
		n.Depth = clamped
		setDepths(n.Children, depth+1)
	}
}
