package handler

import (
	"log/slog"
	"net/http"

	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/httputil"
)

// PageHandler handles page HTTP requests
type PageHandler struct {
	pageService sitemapSvc.PageService
	logger      *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService sitemapSvc.PageService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		pageService: pageService,
		logger:      logger,
	}
}

// ListPages lists a project's pages in display order
// GET /api/projects/{id}/pages
func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	pages, err := h.pageService.ListPages(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pages)
}

// CreatePage creates a new page in a project
// POST /api/projects/{id}/pages
func (h *PageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	var req sitemapSvc.CreatePageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ProjectID = projectID

	page, err := h.pageService.CreatePage(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, page)
}

// GetPage retrieves a page by ID
// GET /api/projects/{id}/pages/{pageID}
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	pageID := r.PathValue("pageID")
	if projectID == "" || pageID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID and page ID are required")
		return
	}

	page, err := h.pageService.GetPage(r.Context(), pageID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// UpdatePage patches a page's fields; a slug change cascades to
// descendant paths.
// PATCH /api/projects/{id}/pages/{pageID}
func (h *PageHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	pageID := r.PathValue("pageID")
	if projectID == "" || pageID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID and page ID are required")
		return
	}

	var req sitemapSvc.UpdatePageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ProjectID = projectID

	page, err := h.pageService.UpdatePage(r.Context(), pageID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// DeletePage removes a page; children surface at the top level until
// re-parented.
// DELETE /api/projects/{id}/pages/{pageID}
func (h *PageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	pageID := r.PathValue("pageID")
	if projectID == "" || pageID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID and page ID are required")
		return
	}

	if err := h.pageService.DeletePage(r.Context(), pageID, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
