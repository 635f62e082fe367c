package sitemap

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"log/slog"

	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/service/sitetree"
)

// csvHeader is the column layout ExportCSV writes and ImportCSV expects
var csvHeader = []string{"Title", "Path", "Nav I", "Nav II", "Nav III", "Keyword", "Description", "Notes", "Icon"}

// sitemapXMLNS is the sitemap protocol namespace
const sitemapXMLNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// urlSet is the root element of a sitemap.xml document
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// urlEntry is a single <url> element
type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// exportService implements the ExportService interface
type exportService struct {
	pageRepo    sitemapRepo.PageRepository
	projectRepo sitemapRepo.ProjectRepository
	logger      *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	pageRepo sitemapRepo.PageRepository,
	projectRepo sitemapRepo.ProjectRepository,
	logger *slog.Logger,
) sitemapSvc.ExportService {
	return &exportService{
		pageRepo:    pageRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// ExportCSV renders the project's pages in display order with the
// Nav I/II/III breadcrumb columns and the effective (possibly
// inherited) icon per page.
func (s *exportService) ExportCSV(ctx context.Context, projectID string) ([]byte, error) {
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ordered := sitetree.SortForDisplay(pages)
	icons := sitetree.IconMap(ordered)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, nav := range sitetree.Nav(ordered) {
		record := []string{
			nav.Title,
			nav.Path,
			nav.NavI,
			nav.NavII,
			nav.NavIII,
			nav.Keyword,
			nav.Description,
			nav.Notes,
			icons[nav.ID],
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row for page %s: %w", nav.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info("csv exported", "project_id", projectID, "pages", len(ordered))

	return buf.Bytes(), nil
}

// ExportSitemapXML renders a sitemap.xml urlset for the project. Every
// path is prefixed with the project's domain; with no domain configured
// the bare paths are emitted.
func (s *exportService) ExportSitemapXML(ctx context.Context, projectID string) ([]byte, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	set := urlSet{XMLNS: sitemapXMLNS}
	for _, p := range sitetree.SortForDisplay(pages) {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     project.Domain + p.Path,
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}

	s.logger.Info("sitemap exported", "project_id", projectID, "urls", len(set.URLs))

	return append([]byte(xml.Header), out...), nil
}
