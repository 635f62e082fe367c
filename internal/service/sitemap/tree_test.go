package sitemap

import (
	"context"
	"errors"
	"testing"

	"sitearch/internal/domain"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
)

// seedSite builds the fixture
//
//	/ (home)
//	  /a
//	    /a/b
//	  /c
func seedSite(repo *fakePageRepo) {
	seedPage(repo, "home", "proj", nil, "/", 0, 0)
	seedPage(repo, "a", "proj", ptr("home"), "/a", 0, 1)
	seedPage(repo, "b", "proj", ptr("a"), "/a/b", 0, 2)
	seedPage(repo, "c", "proj", ptr("home"), "/c", 1, 1)
}

func TestGetTreeNestsPages(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	tree, err := svc.GetTree(context.Background(), "proj")
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "home" {
		t.Fatalf("expected a single home root, got %d roots", len(tree))
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("home has %d children, want 2", len(tree[0].Children))
	}
	a := tree[0].Children[0]
	if a.ID != "a" || len(a.Children) != 1 || a.Children[0].ID != "b" {
		t.Errorf("expected b nested under a")
	}
}

func TestMovePagesPersistsLayout(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	tree, err := svc.MovePages(context.Background(), "proj", &sitemapSvc.MovePagesRequest{
		PageIDs:  []string{"b"},
		ParentID: ptr("c"),
		Position: 0,
	})
	if err != nil {
		t.Fatalf("MovePages: %v", err)
	}
	moved := repo.byID("b")
	if moved.ParentID == nil || *moved.ParentID != "c" {
		t.Fatalf("persisted parent = %v, want c", moved.ParentID)
	}
	if moved.Path != "/c/b" {
		t.Errorf("persisted path = %q, want %q", moved.Path, "/c/b")
	}
	if got := len(tree); got != 1 {
		t.Errorf("returned tree has %d roots, want 1", got)
	}
}

func TestMovePagesIntoOwnSubtreeDeclined(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	_, err := svc.MovePages(context.Background(), "proj", &sitemapSvc.MovePagesRequest{
		PageIDs:  []string{"a"},
		ParentID: ptr("b"),
		Position: 0,
	})
	if !errors.Is(err, domain.ErrMoveDeclined) {
		t.Fatalf("err = %v, want ErrMoveDeclined", err)
	}
	if p := repo.byID("a"); p.ParentID == nil || *p.ParentID != "home" {
		t.Error("declined move must not change the stored layout")
	}
}

func TestMovePagesUnknownIDsDeclined(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	_, err := svc.MovePages(context.Background(), "proj", &sitemapSvc.MovePagesRequest{
		PageIDs:  []string{"missing"},
		ParentID: nil,
		Position: 0,
	})
	if !errors.Is(err, domain.ErrMoveDeclined) {
		t.Fatalf("err = %v, want ErrMoveDeclined", err)
	}
}

func TestUndoMoveRestoresPreviousLayout(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())
	ctx := context.Background()

	if _, err := svc.MovePages(ctx, "proj", &sitemapSvc.MovePagesRequest{
		PageIDs:  []string{"b"},
		ParentID: ptr("c"),
		Position: 0,
	}); err != nil {
		t.Fatalf("MovePages: %v", err)
	}

	if _, err := svc.UndoMove(ctx, "proj"); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}

	restored := repo.byID("b")
	if restored.ParentID == nil || *restored.ParentID != "a" {
		t.Fatalf("parent after undo = %v, want a", restored.ParentID)
	}
	if restored.Path != "/a/b" {
		t.Errorf("path after undo = %q, want %q", restored.Path, "/a/b")
	}
}

func TestUndoMoveEmptyBufferReturnsCurrentTree(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	tree, err := svc.UndoMove(context.Background(), "proj")
	if err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "home" {
		t.Errorf("got %d roots, want current tree unchanged", len(tree))
	}
}

func TestUndoMoveKeepsSnapshotOnWriteFailure(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())
	ctx := context.Background()

	if _, err := svc.MovePages(ctx, "proj", &sitemapSvc.MovePagesRequest{
		PageIDs:  []string{"b"},
		ParentID: ptr("c"),
		Position: 0,
	}); err != nil {
		t.Fatalf("MovePages: %v", err)
	}

	repo.applyLayoutErr = errors.New("write failed")
	if _, err := svc.UndoMove(ctx, "proj"); err == nil {
		t.Fatal("expected undo to surface the write failure")
	}

	// The snapshot must still be there for a retry
	repo.applyLayoutErr = nil
	if _, err := svc.UndoMove(ctx, "proj"); err != nil {
		t.Fatalf("retry UndoMove: %v", err)
	}
	if restored := repo.byID("b"); restored.Path != "/a/b" {
		t.Errorf("path after retried undo = %q, want %q", restored.Path, "/a/b")
	}
}

func TestAnnotationsCoverAllProjections(t *testing.T) {
	repo := newFakePageRepo()
	seedSite(repo)
	repo.byID("a").Icon = ptr("globe")
	svc := NewTreeService(repo, fakeTxManager{}, testLogger())

	ann, err := svc.Annotations(context.Background(), "proj")
	if err != nil {
		t.Fatalf("Annotations: %v", err)
	}

	if ann.Colors["a"] == "" || ann.Colors["b"] == "" {
		t.Error("expected pillar colors for a and b")
	}
	if ann.Colors["a"] != ann.Colors["b"] {
		t.Errorf("a and b should share a pillar color: %q vs %q", ann.Colors["a"], ann.Colors["b"])
	}
	if ann.Colors["c"] == ann.Colors["a"] {
		t.Error("sibling pillars a and c should not share a color")
	}
	if ann.Colors["home"] == ann.Colors["a"] {
		t.Error("home keeps its reserved color, distinct from pillar a")
	}
	if ann.Icons["b"] != "globe" {
		t.Errorf("b inherited icon = %q, want globe", ann.Icons["b"])
	}
	if len(ann.Nav) != 4 {
		t.Fatalf("nav rows = %d, want 4", len(ann.Nav))
	}
	for _, nav := range ann.Nav {
		if nav.ID == "b" && (nav.NavI != "/" || nav.NavII != "a" || nav.NavIII != "b") {
			t.Errorf("nav for b = %q/%q/%q, want //a/b", nav.NavI, nav.NavII, nav.NavIII)
		}
	}
}
