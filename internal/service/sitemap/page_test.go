package sitemap

import (
	"context"
	"errors"
	"testing"

	"sitearch/internal/domain"
	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/httputil"
)

func TestCreatePageAtRoot(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	page, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
		ProjectID: "proj",
		Slug:      "services",
		Title:     "Services",
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.Path != "/services" {
		t.Errorf("path = %q, want %q", page.Path, "/services")
	}
	if page.Depth != 0 || page.OrderKey != 0 {
		t.Errorf("depth/order = %d/%d, want 0/0", page.Depth, page.OrderKey)
	}
	if page.ParentID != nil {
		t.Errorf("parent = %v, want nil", *page.ParentID)
	}
}

func TestCreatePageAppendsToSiblings(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "p1", "proj", nil, "/a", 0, 0)
	seedPage(repo, "p2", "proj", nil, "/b", 1, 0)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	page, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
		ProjectID: "proj",
		Slug:      "c",
		Title:     "C",
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.OrderKey != 2 {
		t.Errorf("order = %d, want 2", page.OrderKey)
	}
}

func TestCreatePageUnderParent(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "p1", "proj", nil, "/services", 0, 0)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	page, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
		ProjectID: "proj",
		ParentID:  ptr("p1"),
		Slug:      "web-design",
		Title:     "Web Design",
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.Path != "/services/web-design" {
		t.Errorf("path = %q, want %q", page.Path, "/services/web-design")
	}
	if page.Depth != 1 {
		t.Errorf("depth = %d, want 1", page.Depth)
	}
}

func TestCreateHomePage(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	page, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
		ProjectID: "proj",
		ParentID:  ptr("ignored"),
		Slug:      "/",
		Title:     "Home",
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.Path != "/" {
		t.Errorf("path = %q, want %q", page.Path, "/")
	}
	if page.ParentID != nil {
		t.Error("home page must be top-level regardless of requested parent")
	}
}

func TestCreatePageDuplicatePathConflicts(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "p1", "proj", nil, "/about", 0, 0)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	_, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
		ProjectID: "proj",
		Slug:      "about",
		Title:     "About",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestCreatePageRejectsBadSlug(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	for _, slug := range []string{"Has Space", "UPPER", "trailing-", "a/b", ""} {
		_, err := svc.CreatePage(context.Background(), &sitemapSvc.CreatePageRequest{
			ProjectID: "proj",
			Slug:      slug,
			Title:     "X",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("slug %q: err = %v, want ErrValidation", slug, err)
		}
	}
}

func TestUpdatePageIconTriState(t *testing.T) {
	repo := newFakePageRepo()
	p := seedPage(repo, "p1", "proj", nil, "/a", 0, 0)
	p.Icon = ptr("globe")
	svc := NewPageService(repo, fakeTxManager{}, testLogger())
	ctx := context.Background()

	// Absent: icon untouched
	got, err := svc.UpdatePage(ctx, "p1", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Title:     ptr("New Title"),
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if got.Icon == nil || *got.Icon != "globe" {
		t.Errorf("icon = %v, want globe", got.Icon)
	}

	// Value: icon replaced
	got, err = svc.UpdatePage(ctx, "p1", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Icon:      httputil.OptionalString{Present: true, Value: ptr("cart")},
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if got.Icon == nil || *got.Icon != "cart" {
		t.Errorf("icon = %v, want cart", got.Icon)
	}

	// Null: icon cleared
	got, err = svc.UpdatePage(ctx, "p1", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Icon:      httputil.OptionalString{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if got.Icon != nil {
		t.Errorf("icon = %v, want nil", *got.Icon)
	}
}

func TestUpdatePageSlugCascadesToDescendants(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "p1", "proj", nil, "/services", 0, 0)
	seedPage(repo, "p2", "proj", ptr("p1"), "/services/seo", 0, 1)
	seedPage(repo, "p3", "proj", ptr("p2"), "/services/seo/audits", 0, 2)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	got, err := svc.UpdatePage(context.Background(), "p1", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Slug:      ptr("solutions"),
	})
	if err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	if got.Path != "/solutions" {
		t.Errorf("path = %q, want %q", got.Path, "/solutions")
	}
	if p := repo.byID("p2"); p.Path != "/solutions/seo" {
		t.Errorf("child path = %q, want %q", p.Path, "/solutions/seo")
	}
	if p := repo.byID("p3"); p.Path != "/solutions/seo/audits" {
		t.Errorf("grandchild path = %q, want %q", p.Path, "/solutions/seo/audits")
	}
}

func TestUpdatePageSlugConflictDeclined(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "p1", "proj", nil, "/a", 0, 0)
	seedPage(repo, "p2", "proj", nil, "/b", 1, 0)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	_, err := svc.UpdatePage(context.Background(), "p1", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Slug:      ptr("b"),
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if p := repo.byID("p1"); p.Path != "/a" {
		t.Errorf("path changed to %q on declined rename", p.Path)
	}
}

func TestUpdateHomeSlugRejected(t *testing.T) {
	repo := newFakePageRepo()
	seedPage(repo, "home", "proj", nil, "/", 0, 0)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	_, err := svc.UpdatePage(context.Background(), "home", &sitemapSvc.UpdatePageRequest{
		ProjectID: "proj",
		Slug:      ptr("start"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestListPagesDisplayOrder(t *testing.T) {
	repo := newFakePageRepo()
	// Inserted out of display order on purpose
	seedPage(repo, "p3", "proj", ptr("p2"), "/a/b", 0, 1)
	seedPage(repo, "p1", "proj", nil, "/", 0, 0)
	seedPage(repo, "p2", "proj", ptr("p1"), "/a", 0, 1)
	svc := NewPageService(repo, fakeTxManager{}, testLogger())

	pages, err := svc.ListPages(context.Background(), "proj")
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	want := []string{"p1", "p2", "p3"}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(pages), len(want))
	}
	for i, id := range want {
		if pages[i].ID != id {
			t.Errorf("pages[%d] = %s, want %s", i, pages[i].ID, id)
		}
	}
}
