package sitemap

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sitearch/internal/config"
	"sitearch/internal/domain"
	models "sitearch/internal/domain/models/sitemap"
	"sitearch/internal/domain/repositories"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/service/sitetree"
)

// importService implements the ImportService interface
type importService struct {
	pageRepo  sitemapRepo.PageRepository
	txManager repositories.TransactionManager
	client    *http.Client
	logger    *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	pageRepo sitemapRepo.PageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) sitemapSvc.ImportService {
	return &importService{
		pageRepo:  pageRepo,
		txManager: txManager,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// pageSeed carries the descriptive fields an import row contributes to
// the page created for its path. Ancestors the row implies but does not
// describe are created with defaults.
type pageSeed struct {
	Title       string
	Keyword     string
	Description string
	Notes       string
	Icon        string
}

// ImportCSV creates pages from CSV rows with the ExportCSV header
// layout. Rows for paths that already exist update nothing and are
// skipped. Returns the number of pages created.
func (s *importService) ImportCSV(ctx context.Context, projectID string, data []byte) (int, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: cannot read csv header: %v", domain.ErrValidation, err)
	}
	col := indexColumns(header)
	if _, ok := col["path"]; !ok {
		return 0, fmt.Errorf("%w: csv is missing the Path column", domain.ErrValidation)
	}

	type row struct {
		path string
		seed pageSeed
	}
	var rows []row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: malformed csv row: %v", domain.ErrValidation, err)
		}
		if len(rows) >= config.MaxImportRows {
			return 0, fmt.Errorf("%w: import exceeds %d rows", domain.ErrValidation, config.MaxImportRows)
		}
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		path := field("path")
		if path == "" {
			continue
		}
		rows = append(rows, row{
			path: path,
			seed: pageSeed{
				Title:       field("title"),
				Keyword:     field("keyword"),
				Description: field("description"),
				Notes:       field("notes"),
				Icon:        field("icon"),
			},
		})
	}

	created := 0
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		idx, err := s.loadIndex(txCtx, projectID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			n, err := s.ensurePath(txCtx, projectID, idx, row.path, row.seed)
			if err != nil {
				return err
			}
			created += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("csv imported",
		"project_id", projectID,
		"rows", len(rows),
		"created", created,
	)

	return created, nil
}

// ImportSitemap fetches a live sitemap.xml and recreates its URL
// hierarchy as pages. Intermediate pages absent from the sitemap are
// created so every URL has a full ancestor line.
func (s *importService) ImportSitemap(ctx context.Context, projectID, sitemapURL string) (int, error) {
	if _, err := url.ParseRequestURI(sitemapURL); err != nil {
		return 0, fmt.Errorf("%w: invalid sitemap url: %v", domain.ErrValidation, err)
	}

	paths, err := s.fetchSitemapPaths(ctx, sitemapURL)
	if err != nil {
		return 0, err
	}
	if len(paths) > config.MaxImportRows {
		return 0, fmt.Errorf("%w: sitemap exceeds %d urls", domain.ErrValidation, config.MaxImportRows)
	}

	created := 0
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		idx, err := s.loadIndex(txCtx, projectID)
		if err != nil {
			return err
		}
		for _, p := range paths {
			n, err := s.ensurePath(txCtx, projectID, idx, p, pageSeed{})
			if err != nil {
				return err
			}
			created += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("sitemap imported",
		"project_id", projectID,
		"urls", len(paths),
		"created", created,
	)

	return created, nil
}

// fetchSitemapPaths downloads a sitemap.xml and returns the URL paths
// it lists, in document order and deduplicated.
func (s *importService) fetchSitemapPaths(ctx context.Context, sitemapURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sitemap request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sitemap fetch returned %s", domain.ErrValidation, resp.Status)
	}

	var set urlSet
	if err := xml.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: cannot parse sitemap xml: %v", domain.ErrValidation, err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, entry := range set.URLs {
		u, err := url.Parse(strings.TrimSpace(entry.Loc))
		if err != nil {
			continue
		}
		p := u.Path
		if p == "" {
			p = sitetree.RootMarker
		}
		p = "/" + strings.Trim(p, "/")
		if p == "//" {
			p = sitetree.RootMarker
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// importIndex caches a project's pages by path during one import run
type importIndex struct {
	byPath     map[string]*models.Page
	childCount map[string]int // keyed by parent ID, "" for roots
}

// loadIndex snapshots the project's current pages for duplicate and
// sibling-order bookkeeping.
func (s *importService) loadIndex(ctx context.Context, projectID string) (*importIndex, error) {
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	idx := &importIndex{
		byPath:     make(map[string]*models.Page, len(pages)),
		childCount: make(map[string]int),
	}
	for i := range pages {
		p := &pages[i]
		idx.byPath[p.Path] = p
		key := ""
		if p.ParentID != nil {
			key = *p.ParentID
		}
		idx.childCount[key]++
	}
	return idx, nil
}

// ensurePath creates the page at path plus any missing ancestors,
// returning how many pages it created. Existing pages are left as they
// are. When the project has a "/" home page, first segments become its
// children so they classify as pillars rather than extra roots.
func (s *importService) ensurePath(ctx context.Context, projectID string, idx *importIndex, path string, seed pageSeed) (int, error) {
	if path == sitetree.RootMarker {
		if _, ok := idx.byPath[path]; ok {
			return 0, nil
		}
		return 1, s.createIndexed(ctx, projectID, idx, nil, sitetree.RootMarker, seed)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	created := 0
	parent := idx.byPath[sitetree.RootMarker] // nil when the project has no home page
	prefix := ""
	for i, seg := range segments {
		prefix = prefix + "/" + seg
		if existing, ok := idx.byPath[prefix]; ok {
			parent = existing
			continue
		}

		var parentID *string
		if parent != nil {
			id := parent.ID
			parentID = &id
		}
		rowSeed := pageSeed{}
		if i == len(segments)-1 {
			rowSeed = seed
		}
		if err := s.createIndexed(ctx, projectID, idx, parentID, prefix, rowSeed); err != nil {
			return created, err
		}
		created++
		parent = idx.byPath[prefix]
	}
	return created, nil
}

// createIndexed creates one page and records it in the index
func (s *importService) createIndexed(ctx context.Context, projectID string, idx *importIndex, parentID *string, path string, seed pageSeed) error {
	parentKey := ""
	depth := 0
	if parentID != nil {
		parentKey = *parentID
		if parent, ok := idx.byPath[parentPathOf(path)]; ok {
			depth = parent.Depth + 1
			if depth > config.MaxPageDepth {
				depth = config.MaxPageDepth
			}
		}
	}

	title := seed.Title
	if title == "" {
		if path == sitetree.RootMarker {
			title = "Home"
		} else {
			title = sitetree.DisplayName(path)
		}
	}

	var icon *string
	if seed.Icon != "" {
		iconVal := seed.Icon
		icon = &iconVal
	}

	page := &models.Page{
		ProjectID:   projectID,
		ParentID:    parentID,
		Path:        path,
		OrderKey:    idx.childCount[parentKey],
		Depth:       depth,
		Icon:        icon,
		Title:       title,
		Description: seed.Description,
		Keyword:     seed.Keyword,
		Notes:       seed.Notes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.pageRepo.Create(ctx, page); err != nil {
		return fmt.Errorf("create imported page %q: %w", path, err)
	}

	idx.byPath[path] = page
	idx.childCount[parentKey]++
	return nil
}

// parentPathOf strips the last segment from a path
func parentPathOf(path string) string {
	trimmed := strings.TrimSuffix(path, "/"+sitetree.Slug(path))
	if trimmed == "" {
		return sitetree.RootMarker
	}
	return trimmed
}

// indexColumns maps lowercased, space-normalized header names to their
// positions ("Nav I" and "nav i" both resolve).
func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}
