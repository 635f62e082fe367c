package sitetree

import (
	"reflect"
	"testing"

	"sitearch/internal/domain/models/sitemap"
)

func TestPillarColorMapAssignsClusters(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 0),
		page("services", "home", "/services", 0),
		page("seo", "services", "/services/seo", 0),
		page("audits", "seo", "/services/seo/audits", 0),
		page("blog", "home", "/blog", 1),
		page("post", "blog", "/blog/post", 0),
	}

	colors := PillarColorMap(pages)

	if colors["home"] != HomeColor() {
		t.Errorf("home color = %q, want reserved home color", colors["home"])
	}

	cycle := PaletteColors()
	if colors["services"] != cycle[0] {
		t.Errorf("first pillar color = %q, want %q", colors["services"], cycle[0])
	}
	if colors["blog"] != cycle[1] {
		t.Errorf("second pillar color = %q, want %q", colors["blog"], cycle[1])
	}

	// Every descendant maps to its pillar's color
	if colors["seo"] != colors["services"] || colors["audits"] != colors["services"] {
		t.Errorf("services descendants not grouped with pillar")
	}
	if colors["post"] != colors["blog"] {
		t.Errorf("blog descendant not grouped with pillar")
	}

	// Two pillars never share a color (palette is large enough here)
	if colors["services"] == colors["blog"] {
		t.Errorf("distinct pillars share color %q", colors["services"])
	}
	// Home color is reserved, never a pillar color
	if colors["services"] == HomeColor() || colors["blog"] == HomeColor() {
		t.Errorf("pillar assigned the reserved home color")
	}
}

func TestPillarColorMapDeterministic(t *testing.T) {
	pages := siteFixture()

	first := PillarColorMap(pages)
	second := PillarColorMap(pages)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("classification is not deterministic for unchanged input")
	}

	// Input list order must not matter: pillar order comes from the
	// built tree, not incidental iteration order
	shuffled := []sitemap.Page{pages[3], pages[1], pages[0], pages[2]}
	third := PillarColorMap(shuffled)
	if !reflect.DeepEqual(first, third) {
		t.Fatal("classification depends on input list order")
	}
}

func TestPillarColorMapCyclesPalette(t *testing.T) {
	pages := []sitemap.Page{page("home", "", "/", 0)}
	n := len(PaletteColors())
	for i := 0; i < n+1; i++ {
		id := string(rune('a' + i))
		pages = append(pages, page(id, "home", "/"+id, i))
	}

	colors := PillarColorMap(pages)
	// Pillar n+1 wraps around to the first palette entry
	first := pages[1].ID
	last := pages[len(pages)-1].ID
	if colors[first] != colors[last] {
		t.Errorf("expected palette to cycle: %q vs %q", colors[first], colors[last])
	}
}

func TestPillarColorMapDisconnectedGetNoEntry(t *testing.T) {
	pages := []sitemap.Page{
		page("home", "", "/", 0),
		page("services", "home", "/services", 0),
		page("lost", "ghost", "/lost", 0),       // dangling parent
		page("cyc1", "cyc2", "/cyc1", 0),        // cycle
		page("cyc2", "cyc1", "/cyc2", 0),
		page("deep", "lost", "/lost/deep", 0),   // chain ends at a dangling parent
	}

	colors := PillarColorMap(pages)
	for _, id := range []string{"lost", "cyc1", "cyc2", "deep"} {
		if _, ok := colors[id]; ok {
			t.Errorf("expected no entry for %q, got %q", id, colors[id])
		}
	}
}
