package sitemap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"sitearch/internal/domain"
	models "sitearch/internal/domain/models/sitemap"
	"sitearch/internal/domain/repositories"
)

// fakePageRepo is an in-memory PageRepository for service tests
type fakePageRepo struct {
	pages  []*models.Page
	nextID int

	// applyLayoutErr, when set, makes ApplyLayout fail
	applyLayoutErr error
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{}
}

func (r *fakePageRepo) Create(_ context.Context, page *models.Page) error {
	if page.ID == "" {
		r.nextID++
		page.ID = fmt.Sprintf("page-%d", r.nextID)
	}
	stored := *page
	r.pages = append(r.pages, &stored)
	return nil
}

func (r *fakePageRepo) GetByID(_ context.Context, id, projectID string) (*models.Page, error) {
	for _, p := range r.pages {
		if p.ID == id && p.ProjectID == projectID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "page", ID: id}
}

func (r *fakePageRepo) GetByPath(_ context.Context, projectID, path string) (*models.Page, error) {
	for _, p := range r.pages {
		if p.ProjectID == projectID && p.Path == path {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "page", ID: path}
}

func (r *fakePageRepo) Update(_ context.Context, page *models.Page) error {
	for i, p := range r.pages {
		if p.ID == page.ID && p.ProjectID == page.ProjectID {
			stored := *page
			r.pages[i] = &stored
			return nil
		}
	}
	return &domain.NotFoundError{Resource: "page", ID: page.ID}
}

func (r *fakePageRepo) Delete(_ context.Context, id, projectID string) error {
	for i, p := range r.pages {
		if p.ID == id && p.ProjectID == projectID {
			r.pages = append(r.pages[:i], r.pages[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Resource: "page", ID: id}
}

func (r *fakePageRepo) ListChildren(_ context.Context, parentID *string, projectID string) ([]models.Page, error) {
	var out []models.Page
	for _, p := range r.pages {
		if p.ProjectID != projectID {
			continue
		}
		switch {
		case parentID == nil && p.ParentID == nil:
			out = append(out, *p)
		case parentID != nil && p.ParentID != nil && *parentID == *p.ParentID:
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderKey < out[j].OrderKey })
	return out, nil
}

func (r *fakePageRepo) GetAllByProject(_ context.Context, projectID string) ([]models.Page, error) {
	var out []models.Page
	for _, p := range r.pages {
		if p.ProjectID == projectID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePageRepo) ApplyLayout(_ context.Context, projectID string, entries []models.FlatEntry) error {
	if r.applyLayoutErr != nil {
		return r.applyLayoutErr
	}
	for _, e := range entries {
		for _, p := range r.pages {
			if p.ID == e.ID && p.ProjectID == projectID {
				p.ParentID = e.ParentID
				p.OrderKey = e.OrderKey
				p.Depth = e.Depth
				p.Path = e.Path
				p.UpdatedAt = time.Now()
			}
		}
	}
	return nil
}

// byID reaches into the store directly, bypassing the repository API
func (r *fakePageRepo) byID(id string) *models.Page {
	for _, p := range r.pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository for service tests
type fakeProjectRepo struct {
	projects []*models.Project
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	if project.ID == "" {
		r.nextID++
		project.ID = fmt.Sprintf("project-%d", r.nextID)
	}
	stored := *project
	r.projects = append(r.projects, &stored)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "project", ID: id}
}

func (r *fakeProjectRepo) List(_ context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	for i, p := range r.projects {
		if p.ID == project.ID {
			stored := *project
			r.projects[i] = &stored
			return nil
		}
	}
	return &domain.NotFoundError{Resource: "project", ID: project.ID}
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Resource: "project", ID: id}
}

// fakeTxManager runs the function directly without a transaction
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedPage inserts a page with explicit layout fields
func seedPage(r *fakePageRepo, id, projectID string, parentID *string, path string, order, depth int) *models.Page {
	p := &models.Page{
		ID:        id,
		ProjectID: projectID,
		ParentID:  parentID,
		Path:      path,
		OrderKey:  order,
		Depth:     depth,
		Title:     path,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.pages = append(r.pages, p)
	return p
}

func ptr(s string) *string {
	return &s
}
