package handler

import (
	"log/slog"
	"net/http"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// ProjectHandler handles project and project membership HTTP requests
type ProjectHandler struct {
	projectSvc  services.ProjectService
	memberSvc   services.ProjectMemberService
	identitySvc services.IdentityService
	logger      *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectSvc services.ProjectService, memberSvc services.ProjectMemberService, identitySvc services.IdentityService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectSvc:  projectSvc,
		memberSvc:   memberSvc,
		identitySvc: identitySvc,
		logger:      logger,
	}
}

// Create creates a project in the caller's organization
// POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectSvc.Create(r.Context(), identity, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// List retrieves the projects of the caller's organization
// GET /api/projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	orgID := identity.OrgID
	if raw := r.URL.Query().Get("org_id"); raw != "" {
		orgID, err = parseUUID(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
			return
		}
	}

	projects, err := h.projectSvc.List(r.Context(), identity, orgID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// Get retrieves a project
// GET /api/projects/{projectID}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	project, err := h.projectSvc.Get(r.Context(), identity, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// Update changes a project's name, slug and description
// PATCH /api/projects/{projectID}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectSvc.Update(r.Context(), identity, projectID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// Delete soft-deletes a project
// DELETE /api/projects/{projectID}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.projectSvc.Delete(r.Context(), identity, projectID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers retrieves all members of a project
// GET /api/projects/{projectID}/members
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.memberSvc.List(r.Context(), identity, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AddMember grants a user a role in the project
// POST /api/projects/{projectID}/members
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
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

	var req services.AddProjectMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberSvc.Add(r.Context(), identity, projectID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

// UpdateMemberRole changes a member's project role
// PATCH /api/projects/{projectID}/members/{userID}
func (h *ProjectHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}
	userID := r.PathValue("userID")

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.UpdateProjectMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberSvc.UpdateRole(r.Context(), identity, projectID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// RemoveMember drops a member from the project
// DELETE /api/projects/{projectID}/members/{userID}
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r.PathValue("projectID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid project ID format")
		return
	}
	userID := r.PathValue("userID")

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.memberSvc.Remove(r.Context(), identity, projectID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
