package handler

import (
	"log/slog"
	"net/http"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// MeHandler handles profile and permission introspection HTTP requests
type MeHandler struct {
	identitySvc services.IdentityService
	logger      *slog.Logger
}

// NewMeHandler creates a new profile handler
func NewMeHandler(identitySvc services.IdentityService, logger *slog.Logger) *MeHandler {
	return &MeHandler{
		identitySvc: identitySvc,
		logger:      logger,
	}
}

// Me returns the caller's mirror record and organization
// GET /api/me
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.identitySvc.Me(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, me)
}

// Permissions returns the caller's effective permission set, for UI
// conditional rendering. An optional project_id query parameter switches to
// project scope.
// GET /api/me/permissions?project_id=...
func (h *MeHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID != "" {
		if _, err := parseUUID(projectID); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
			return
		}
	}

	perms, err := h.identitySvc.PermissionsFor(r.Context(), httputil.GetUserID(r), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"permissions": perms,
	})
}
