package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitearch/internal/config"
	"sitearch/internal/domain"
	models "sitearch/internal/domain/models/sitemap"
	"sitearch/internal/domain/repositories"
	sitemapRepo "sitearch/internal/domain/repositories/sitemap"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/service/sitetree"
)

// treeService implements the TreeService interface. Undo snapshots are
// held in memory per project; they do not survive a restart.
type treeService struct {
	pageRepo  sitemapRepo.PageRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger

	mu        sync.Mutex
	histories map[string]*sitetree.History
}

// NewTreeService creates a new tree service
func NewTreeService(
	pageRepo sitemapRepo.PageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) sitemapSvc.TreeService {
	return &treeService{
		pageRepo:  pageRepo,
		txManager: txManager,
		logger:    logger,
		histories: make(map[string]*sitetree.History),
	}
}

// GetTree builds and returns the nested page tree for a project
func (s *treeService) GetTree(ctx context.Context, projectID string) ([]*models.PageTreeNode, error) {
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return sitetree.Build(pages), nil
}

// MovePages relocates pages under a target parent at the given
// position, persists the flattened layout in one transaction, and
// records the pre-move tree for undo. The snapshot is pushed only after
// the write commits so undo never restores to a state that was never
// durable.
func (s *treeService) MovePages(ctx context.Context, projectID string, req *sitemapSvc.MovePagesRequest) ([]*models.PageTreeNode, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.PageIDs, validation.Required),
		validation.Field(&req.Position, validation.Min(0)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	before := sitetree.Build(pages)
	after, ok := sitetree.Move(before, req.PageIDs, normalizeParentID(req.ParentID), req.Position)
	if !ok {
		return nil, fmt.Errorf("%w: no page in %v could be moved to the requested parent", domain.ErrMoveDeclined, req.PageIDs)
	}

	entries := sitetree.Flatten(after)
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.pageRepo.ApplyLayout(txCtx, projectID, entries)
	})
	if err != nil {
		return nil, err
	}

	s.history(projectID).Push(before)

	s.logger.Info("pages moved",
		"project_id", projectID,
		"page_ids", req.PageIDs,
		"parent_id", req.ParentID,
		"position", req.Position,
	)

	return after, nil
}

// UndoMove restores the most recent pre-move snapshot and persists it.
// With nothing to undo it returns the current tree unchanged.
func (s *treeService) UndoMove(ctx context.Context, projectID string) ([]*models.PageTreeNode, error) {
	snapshot, ok := s.history(projectID).Pop()
	if !ok {
		return s.GetTree(ctx, projectID)
	}

	entries := sitetree.Flatten(snapshot)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.pageRepo.ApplyLayout(txCtx, projectID, entries)
	})
	if err != nil {
		// The snapshot was not consumed; put it back for a retry
		s.history(projectID).Push(snapshot)
		return nil, err
	}

	s.logger.Info("move undone", "project_id", projectID)

	return snapshot, nil
}

// Annotations returns the derived read-side projections for a project:
// pillar colors, effective icons and navigation fields.
func (s *treeService) Annotations(ctx context.Context, projectID string) (*sitemapSvc.TreeAnnotations, error) {
	pages, err := s.pageRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ordered := sitetree.SortForDisplay(pages)

	return &sitemapSvc.TreeAnnotations{
		Colors: sitetree.PillarColorMap(ordered),
		Icons:  sitetree.IconMap(ordered),
		Nav:    sitetree.Nav(ordered),
	}, nil
}

// history returns the project's undo buffer, creating it on first use
func (s *treeService) history(projectID string) *sitetree.History {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.histories[projectID]
	if !ok {
		h = sitetree.NewHistory(config.MaxUndoDepth)
		s.histories[projectID] = h
	}
	return h
}
