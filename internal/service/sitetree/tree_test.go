package sitetree

import (
	"reflect"
	"testing"

	"sitearch/internal/domain/models/sitemap"
)

func strPtr(s string) *string {
	return &s
}

// page builds a minimal test page; parentID == "" means root.
func page(id, parentID, path string, order int) sitemap.Page {
	p := sitemap.Page{
		ID:       id,
		Path:     path,
		OrderKey: order,
	}
	if parentID != "" {
		p.ParentID = strPtr(parentID)
	}
	return p
}

// siteFixture is a small three-level site:
//
//	/            (home)
//	├── /a
//	│   └── /a/b
//	└── /c
func siteFixture() []sitemap.Page {
	return []sitemap.Page{
		page("home", "", "/", 0),
		page("a", "home", "/a", 0),
		page("b", "a", "/a/b", 0),
		page("c", "home", "/c", 1),
	}
}

func TestBuildNesting(t *testing.T) {
	tree := Build(siteFixture())

	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	home := tree[0]
	if home.ID != "home" {
		t.Fatalf("expected home root, got %q", home.ID)
	}
	if len(home.Children) != 2 {
		t.Fatalf("expected 2 children of home, got %d", len(home.Children))
	}
	if home.Children[0].ID != "a" || home.Children[1].ID != "c" {
		t.Errorf("children out of order: %q, %q", home.Children[0].ID, home.Children[1].ID)
	}
	if len(home.Children[0].Children) != 1 || home.Children[0].Children[0].ID != "b" {
		t.Errorf("expected b nested under a")
	}
}

func TestBuildSortsSiblingsByOrderKey(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 0),
		page("z", "home", "/z", 2),
		page("a", "home", "/a", 0),
		page("m", "home", "/m", 1),
	}

	tree := Build(pages)
	children := tree[0].Children
	got := []string{children[0].ID, children[1].ID, children[2].ID}
	want := []string{"a", "m", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sibling order = %v, want %v", got, want)
		}
	}
}

func TestBuildOrphanBecomesRoot(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 0),
		page("lost", "ghost", "/lost", 0), // parent not in collection
	}

	tree := Build(pages)
	if len(tree) != 2 {
		t.Fatalf("expected orphan promoted to root, got %d roots", len(tree))
	}
}

func TestBuildTerminatesOnCycle(t *testing.T) {
	// a -> b -> a, with c hanging off the cycle
	pages := []sitemap.Page{
		page("a", "b", "/a", 0),
		page("b", "a", "/b", 0),
		page("c", "b", "/b/c", 0),
	}

	tree := Build(pages) // must not loop

	// Both cycle members surface as roots; c stays a normal child of b
	ids := make(map[string]bool)
	for _, root := range tree {
		ids[root.ID] = true
	}
	if !ids["a"] || !ids["b"] {
		t.Fatalf("expected cycle members promoted to roots, got roots %v", ids)
	}
	var b *sitemap.PageTreeNode
	for _, root := range tree {
		if root.ID == "b" {
			b = root
		}
	}
	if b == nil || len(b.Children) != 1 || b.Children[0].ID != "c" {
		t.Errorf("expected c to remain a child of b")
	}
}

func TestFlattenRenormalizesOrderKeys(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 5),
		page("a", "home", "/a", 10),
		page("c", "home", "/c", 30),
		page("b", "home", "/b", 20),
	}

	entries := Flatten(Build(pages))

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	// Pre-order: home, then its children in order-key order with fresh
	// contiguous keys
	wantOrder := []struct {
		id       string
		orderKey int
		depth    int
	}{
		{"home", 0, 0},
		{"a", 0, 1},
		{"b", 1, 1},
		{"c", 2, 1},
	}
	for i, want := range wantOrder {
		if entries[i].ID != want.id {
			t.Fatalf("entries[%d].ID = %q, want %q", i, entries[i].ID, want.id)
		}
		if entries[i].OrderKey != want.orderKey {
			t.Errorf("entries[%d].OrderKey = %d, want %d", i, entries[i].OrderKey, want.orderKey)
		}
		if entries[i].Depth != want.depth {
			t.Errorf("entries[%d].Depth = %d, want %d", i, entries[i].Depth, want.depth)
		}
	}
}

func TestFlattenClampsDepth(t *testing.T) {
	pages := []sitemap.Page{
		page("l0", "", "/", 0),
		page("l1", "l0", "/a", 0),
		page("l2", "l1", "/a/b", 0),
		page("l3", "l2", "/a/b/c", 0),
		page("l4", "l3", "/a/b/c/d", 0),
		page("l5", "l4", "/a/b/c/d/e", 0),
	}

	entries := Flatten(Build(pages))
	for _, e := range entries {
		if e.Depth > 3 {
			t.Errorf("entry %q depth = %d, want <= 3", e.ID, e.Depth)
		}
	}
	if entries[len(entries)-1].Depth != 3 {
		t.Errorf("deepest page depth = %d, want clamped 3", entries[len(entries)-1].Depth)
	}
}

// Round-trip law: flatten(build(flatten(build(x)))) is a fixed point
// given no structural edits, modulo renormalized order keys.
func TestBuildFlattenRoundTrip(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 3),
		page("a", "home", "/a", 7),
		page("b", "a", "/a/b", 2),
		page("c", "home", "/c", 9),
		page("lost", "ghost", "/lost", 1),
	}

	first := Flatten(Build(pages))

	// Rebuild from the renormalized entries
	rebuilt := make([]sitemap.Page, len(first))
	for i, e := range first {
		rebuilt[i] = sitemap.Page{
			ID:       e.ID,
			ParentID: e.ParentID,
			Path:     e.Path,
			OrderKey: e.OrderKey,
			Depth:    e.Depth,
		}
	}
	second := Flatten(Build(rebuilt))

	if len(first) != len(second) {
		t.Fatalf("round trip changed entry count: %d != %d", len(first), len(second))
	}
	for i := range first {
		// ParentID is a pointer, so compare by value
		if !reflect.DeepEqual(first[i], second[i]) {
			t.Errorf("entry %d drifted: %+v != %+v", i, first[i], second[i])
		}
	}

	// Same ID set as the input
	seen := make(map[string]bool)
	for _, e := range first {
		seen[e.ID] = true
	}
	for _, p := range pages {
		if !seen[p.ID] {
			t.Errorf("page %q lost in round trip", p.ID)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	tree := Build(siteFixture())
	copied := Clone(tree)

	copied[0].Children[0].Path = "/mutated"
	if tree[0].Children[0].Path == "/mutated" {
		t.Fatal("clone shares nodes with the original tree")
	}
}
