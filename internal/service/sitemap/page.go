package sitemap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitearch/internal/config"
	"sitearch/internal/domain"
	models "sitearch/internal/domain/models/sitemap"
	"sitearch/internal/domain/repositories"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/service/sitetree"
)

// slugPattern constrains page slugs to URL-safe lowercase segments.
// The home page's "/" sentinel is handled separately and never matched
// against this.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// pageService implements the PageService interface
type pageService struct {
	pageRepo  sitemapRepo.PageRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(
	pageRepo sitemapRepo.PageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) sitemapSvc.PageService {
	return &pageService{
		pageRepo:  pageRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreatePage creates a new page appended to the end of its target
// sibling set.
func (s *pageService) CreatePage(ctx context.Context, req *sitemapSvc.CreatePageRequest) (*models.Page, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parentID := normalizeParentID(req.ParentID)

	var (
		path  string
		depth int
	)
	switch {
	case req.Slug == sitetree.RootMarker:
		// The singular home page lives at the top level regardless of
		// the requested parent.
		parentID = nil
		path = sitetree.RootMarker
		depth = 0
	case parentID == nil:
		path = sitetree.ChildPath("", req.Slug)
		depth = 0
	default:
		parent, err := s.pageRepo.GetByID(ctx, *parentID, req.ProjectID)
		if err != nil {
			return nil, err
		}
		path = sitetree.ChildPath(parent.Path, req.Slug)
		depth = parent.Depth + 1
		if depth > config.MaxPageDepth {
			depth = config.MaxPageDepth
		}
	}

	if len(path) > config.MaxPagePathLength {
		return nil, fmt.Errorf("%w: path exceeds %d characters", domain.ErrValidation, config.MaxPagePathLength)
	}

	if existing, err := s.pageRepo.GetByPath(ctx, req.ProjectID, path); err == nil {
		return nil, &domain.ConflictError{
			Resource: "page",
			Message:  fmt.Sprintf("path %q is already taken by page %s", path, existing.ID),
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	siblings, err := s.pageRepo.ListChildren(ctx, parentID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		ProjectID:   req.ProjectID,
		ParentID:    parentID,
		Path:        path,
		OrderKey:    len(siblings),
		Depth:       depth,
		Icon:        req.Icon,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Keyword:     req.Keyword,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("page created",
		"id", page.ID,
		"project_id", page.ProjectID,
		"path", page.Path,
	)

	return page, nil
}

// GetPage retrieves a page by ID
func (s *pageService) GetPage(ctx context.Context, id, projectID string) (*models.Page, error) {
	return s.pageRepo.GetByID(ctx, id, projectID)
}

// UpdatePage updates a page's descriptive fields, icon or slug. A slug
// change rewrites the page's path and cascades to every descendant path
// in the same transaction.
func (s *pageService) UpdatePage(ctx context.Context, id string, req *sitemapSvc.UpdatePageRequest) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, id, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validation.Validate(title, validation.Required, validation.Length(1, config.MaxPageTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
		page.Title = title
	}
	if req.Description != nil {
		page.Description = *req.Description
	}
	if req.Keyword != nil {
		page.Keyword = *req.Keyword
	}
	if req.Notes != nil {
		page.Notes = *req.Notes
	}
	if req.Icon.Present {
		// null clears the explicit icon so the page falls back to the
		// inherited one.
		page.Icon = req.Icon.Value
	}
	page.UpdatedAt = time.Now()

	if req.Slug == nil || *req.Slug == sitetree.Slug(page.Path) {
		if err := s.pageRepo.Update(ctx, page); err != nil {
			return nil, err
		}
		s.logger.Info("page updated", "id", page.ID, "project_id", page.ProjectID)
		return page, nil
	}

	return s.renamePage(ctx, page, *req.Slug)
}

// renamePage applies a slug change: the page's own path plus all
// descendant paths are rewritten, and the full layout is persisted
// atomically.
func (s *pageService) renamePage(ctx context.Context, page *models.Page, newSlug string) (*models.Page, error) {
	if page.IsHome() {
		return nil, fmt.Errorf("%w: the home page's slug cannot be changed", domain.ErrValidation)
	}
	if err := validateSlug(newSlug); err != nil {
		return nil, fmt.Errorf("%w: slug: %v", domain.ErrValidation, err)
	}

	parentPath := strings.TrimSuffix(page.Path, "/"+sitetree.Slug(page.Path))
	newPath := sitetree.ChildPath(parentPath, newSlug)
	if len(newPath) > config.MaxPagePathLength {
		return nil, fmt.Errorf("%w: path exceeds %d characters", domain.ErrValidation, config.MaxPagePathLength)
	}

	if existing, err := s.pageRepo.GetByPath(ctx, page.ProjectID, newPath); err == nil && existing.ID != page.ID {
		return nil, &domain.ConflictError{
			Resource: "page",
			Message:  fmt.Sprintf("path %q is already taken by page %s", newPath, existing.ID),
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pages, err := s.pageRepo.GetAllByProject(ctx, page.ProjectID)
	if err != nil {
		return nil, err
	}

	tree := sitetree.Build(pages)
	node := sitetree.Find(tree, page.ID)
	if node == nil {
		return nil, &domain.NotFoundError{Resource: "page", ID: page.ID}
	}
	node.Path = newPath
	sitetree.RewritePaths(node.Children, &newPath)

	entries := sitetree.Flatten(tree)

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		page.Path = newPath
		if err := s.pageRepo.Update(txCtx, page); err != nil {
			return err
		}
		return s.pageRepo.ApplyLayout(txCtx, page.ProjectID, entries)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("page renamed",
		"id", page.ID,
		"project_id", page.ProjectID,
		"path", newPath,
	)

	return page, nil
}

// DeletePage removes a page. Its children keep their parent reference;
// the tree builder surfaces them at the top level until re-parented.
func (s *pageService) DeletePage(ctx context.Context, id, projectID string) error {
	if err := s.pageRepo.Delete(ctx, id, projectID); err != nil {
		return err
	}

	s.logger.Info("page deleted", "id", id, "project_id", projectID)
	return nil
}

// ListPages lists all pages in a project in display (pre-order) order
func (s *pageService) ListPages(ctx context.Context, projectID string) ([]models.Page, error) {
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return sitetree.SortForDisplay(pages), nil
}

// validateCreateRequest validates a page creation request
func (s *pageService) validateCreateRequest(req *sitemapSvc.CreatePageRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxPageTitleLength),
		),
		validation.Field(&req.Slug, validation.Required),
	); err != nil {
		return err
	}
	if req.Slug == sitetree.RootMarker {
		return nil
	}
	return validateSlug(req.Slug)
}

// validateSlug checks a single path segment
func validateSlug(slug string) error {
	return validation.Validate(slug,
		validation.Required,
		validation.Length(1, config.MaxSlugLength),
		validation.Match(slugPattern).Error("must be lowercase letters, digits and hyphens"),
	)
}

// normalizeParentID maps an empty parent reference to nil (root level)
func normalizeParentID(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}
