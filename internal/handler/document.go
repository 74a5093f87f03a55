package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// DocumentHandler handles document, export and analytics HTTP requests
type DocumentHandler struct {
	docSvc       services.DocumentService
	exportSvc    services.ExportService
	analyticsSvc services.AnalyticsService
	identitySvc  services.IdentityService
	logger       *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docSvc services.DocumentService, exportSvc services.ExportService, analyticsSvc services.AnalyticsService, identitySvc services.IdentityService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docSvc:       docSvc,
		exportSvc:    exportSvc,
		analyticsSvc: analyticsSvc,
		identitySvc:  identitySvc,
		logger:       logger,
	}
}

// Create creates a document in a project
// POST /api/projects/{projectID}/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docSvc.Create(r.Context(), identity, projectID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// List retrieves all documents in a project
// GET /api/projects/{projectID}/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	docs, err := h.docSvc.List(r.Context(), identity, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// Get retrieves a document
// GET /api/documents/{documentID}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	documentID, err := parseUUID(r.PathValue("documentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.docSvc.Get(r.Context(), identity, documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Update applies PATCH semantics to a document
// PATCH /api/documents/{documentID}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	documentID, err := parseUUID(r.PathValue("documentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.UpdateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docSvc.Update(r.Context(), identity, documentID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Publish flips a document between draft and published
// POST /api/documents/{documentID}/publish
func (h *DocumentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	documentID, err := parseUUID(r.PathValue("documentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.docSvc.SetPublished(r.Context(), identity, documentID, req.Published)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete soft-deletes a document
// DELETE /api/documents/{documentID}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	documentID, err := parseUUID(r.PathValue("documentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.docSvc.Delete(r.Context(), identity, documentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export streams a zip archive of the project's documents
// GET /api/projects/{projectID}/export?format=markdown|html
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	export, err := h.exportSvc.ExportProject(r.Context(), identity, projectID, r.URL.Query().Get("format"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Archive)
}

// Analytics returns per-project document statistics
// GET /api/projects/{projectID}/analytics
func (h *DocumentHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	stats, err := h.analyticsSvc.ProjectStats(r.Context(), identity, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
