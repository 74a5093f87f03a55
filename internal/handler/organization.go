package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// defaultAuditLimit caps audit log responses when the client omits a limit.
const defaultAuditLimit = 50

// OrganizationHandler handles organization HTTP requests
type OrganizationHandler struct {
	orgSvc      services.OrganizationService
	identitySvc services.IdentityService
	logger      *slog.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgSvc services.OrganizationService, identitySvc services.IdentityService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgSvc:      orgSvc,
		identitySvc: identitySvc,
		logger:      logger,
	}
}

// Create creates an organization with the caller as its first admin
// POST /api/organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.CreateOrganizationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	org, err := h.orgSvc.Create(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, org)
}

// List returns the organizations the caller may see
// GET /api/organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	orgs, err := h.orgSvc.List(r.Context(), identity)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, orgs)
}

// Get retrieves an organization
// GET /api/organizations/{orgID}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	org, err := h.orgSvc.Get(r.Context(), identity, orgID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, org)
}

// Update changes an organization's name and slug
// PATCH /api/organizations/{orgID}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.UpdateOrganizationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	org, err := h.orgSvc.Update(r.Context(), identity, orgID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, org)
}

// Delete soft-deletes an organization
// DELETE /api/organizations/{orgID}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.orgSvc.Delete(r.Context(), identity, orgID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Billing returns the organization's plan limits and usage counts
// GET /api/organizations/{orgID}/billing
func (h *OrganizationHandler) Billing(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	billing, err := h.orgSvc.Billing(r.Context(), identity, orgID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, billing)
}

// AuditLog returns recent role and membership mutations
// GET /api/organizations/{orgID}/audit?limit=...
func (h *OrganizationHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.orgSvc.AuditLog(r.Context(), identity, orgID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}
