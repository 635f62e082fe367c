package handler

import (
	"log/slog"
	"net/http"

	sitemapSvc "sitearch/internal/domain/services/sitemap"
	"sitearch/internal/httputil"
)

// ExportHandler handles export and import HTTP requests
type ExportHandler struct {
	exportService sitemapSvc.ExportService
	importService sitemapSvc.ImportService
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(
	exportService sitemapSvc.ExportService,
	importService sitemapSvc.ImportService,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		importService: importService,
		logger:        logger,
	}
}

// ExportCSV streams the project's pages as a CSV download
// GET /api/projects/{id}/export/csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	data, err := h.exportService.ExportCSV(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="site-architecture.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportSitemapXML streams the project's sitemap.xml
// GET /api/projects/{id}/export/sitemap.xml
func (h *ExportHandler) ExportSitemapXML(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	data, err := h.exportService.ExportSitemapXML(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportCSV ingests a CSV body and creates the pages it describes
// POST /api/projects/{id}/import/csv
func (h *ExportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	data, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Cannot read request body")
		return
	}

	created, err := h.importService.ImportCSV(r.Context(), projectID, data)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"created": created})
}

// ImportSitemap fetches a live sitemap.xml and recreates its hierarchy
// POST /api/projects/{id}/import/sitemap
func (h *ExportHandler) ImportSitemap(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.importService.ImportSitemap(r.Context(), projectID, req.URL)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"created": created})
}
