package sitemap

import (
	"context"
)

// ExportService produces flat exports of a project's site architecture
// for spreadsheet and sitemap consumers. Exports are read-side only and
// never write back to the tree.
type ExportService interface {
	// ExportCSV renders the project's pages in display order with the
	// Nav I/II/III breadcrumb columns
	ExportCSV(ctx context.Context, projectID string) ([]byte, error)

	// ExportSitemapXML renders a sitemap.xml urlset for the project,
	// prefixing every path with the project's domain
	ExportSitemapXML(ctx context.Context, projectID string) ([]byte, error)
}

// ImportService ingests external page collections into a project
type ImportService interface {
	// ImportCSV creates pages from CSV rows previously produced by
	// ExportCSV (or hand-authored with the same headers). Returns the
	// number of pages created.
	ImportCSV(ctx context.Context, projectID string, data []byte) (int, error)

	// ImportSitemap fetches a live sitemap.xml and recreates its URL
	// hierarchy as pages. Returns the number of pages created.
	ImportSitemap(ctx context.Context, projectID, sitemapURL string) (int, error)
}
