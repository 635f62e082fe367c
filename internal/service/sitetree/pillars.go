package sitetree

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"sitearch/internal/domain/models/sitemap"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Palette holds the pillar cluster colors loaded from the embedded
// YAML file. Home is reserved for root pages and is never part of the
// cycling pillar colors.
type Palette struct {
	Home   string   `yaml:"home"`
	Colors []string `yaml:"colors"`
}

var palette = mustLoadPalette()

func mustLoadPalette() Palette {
	data, err := configFiles.ReadFile("config/palette.yaml")
	if err != nil {
		panic(fmt.Sprintf("sitetree: read embedded palette: %v", err))
	}

	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		panic(fmt.Sprintf("sitetree: unmarshal embedded palette: %v", err))
	}
	if p.Home == "" || len(p.Colors) == 0 {
		panic("sitetree: embedded palette is incomplete")
	}
	return p
}

// PillarColorMap partitions the collection into color-coded clusters. A
// pillar is a page whose parent is a root page; pillars receive palette
// colors in pre-order over the built tree (deterministic for a given
// collection), cycling when pillars outnumber palette entries. Every
// descendant inherits its nearest pillar ancestor's color, root pages
// get the reserved home color, and pages whose ancestor chain dead-ends
// in a cycle or a dangling parent get no entry at all.
func PillarColorMap(pages []sitemap.Page) map[string]string {
	byID := make(map[string]sitemap.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}

	colors := make(map[string]string, len(pages))
	pillarColors := make(map[string]string)
	next := 0

	var walk func(nodes []*sitemap.PageTreeNode)
	walk = func(nodes []*sitemap.PageTreeNode) {
		for _, n := range nodes {
			if n.ParentID == nil {
				colors[n.ID] = palette.Home
			} else if parent, ok := byID[*n.ParentID]; ok && parent.ParentID == nil {
				c := palette.Colors[next%len(palette.Colors)]
				next++
				pillarColors[n.ID] = c
				colors[n.ID] = c
			}
			walk(n.Children)
		}
	}
	walk(Build(pages))

	for _, p := range pages {
		if _, done := colors[p.ID]; done {
			continue
		}
		if c, ok := inheritedPillarColor(p.ID, byID, pillarColors); ok {
			colors[p.ID] = c
		}
	}

	return colors
}

// inheritedPillarColor walks parent links toward the nearest pillar.
// The visited set guards against malformed cycles; a dangling parent or
// a loop resolves to no color.
func inheritedPillarColor(id string, byID map[string]sitemap.Page, pillarColors map[string]string) (string, bool) {
	visited := make(map[string]bool)
	cur := id
	for {
		if visited[cur] {
			return "", false
		}
		visited[cur] = true

		p, exists := byID[cur]
		if !exists {
			return "", false
		}
		if c, ok := pillarColors[p.ID]; ok {
			return c, true
		}
		if p.ParentID == nil {
			return "", false
		}
		cur = *p.ParentID
	}
}

// HomeColor returns the reserved color assigned to root pages.
func HomeColor() string {
	return palette.Home
}

// PaletteColors returns the pillar color cycle in assignment order.
func PaletteColors() []string {
	out := make([]string, len(palette.Colors))
	copy(out, palette.Colors)
	return out
}
