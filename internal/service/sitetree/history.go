package sitetree

import (
	"sync"

	"sitearch/internal/domain/models/sitemap"
)

// History is a bounded stack of prior tree snapshots enabling
// single-step undo of structural moves. Snapshots are captured
// immediately before an accepted move is applied; there is no redo and
// no coalescing, so every move adds exactly one entry. The oldest
// entry is dropped once the cap is reached.
type History struct {
	mu        sync.Mutex
	snapshots [][]*sitemap.PageTreeNode
	limit     int
}

// NewHistory creates a history capped at limit snapshots. A
// non-positive limit falls back to a cap of one.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{limit: limit}
}

// Push records a pre-move snapshot. The tree is cloned so later edits
// to the live tree cannot corrupt the stored state.
func (h *History) Push(tree []*sitemap.PageTreeNode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.snapshots) >= h.limit {
		h.snapshots = h.snapshots[len(h.snapshots)-h.limit+1:]
	}
	h.snapshots = append(h.snapshots, Clone(tree))
}

// Pop removes and returns the most recent snapshot. ok is false on an
// empty stack.
func (h *History) Pop() (tree []*sitemap.PageTreeNode, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.snapshots) == 0 {
		return nil, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last, true
}

// Len reports the number of stored snapshots.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots)
}
