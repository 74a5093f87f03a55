package handler

import (
	"log/slog"
	"net/http"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// MemberHandler handles organization membership and invitation HTTP requests
type MemberHandler struct {
	memberSvc   services.MemberService
	inviteSvc   services.InvitationService
	identitySvc services.IdentityService
	logger      *slog.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberSvc services.MemberService, inviteSvc services.InvitationService, identitySvc services.IdentityService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		memberSvc:   memberSvc,
		inviteSvc:   inviteSvc,
		identitySvc: identitySvc,
		logger:      logger,
	}
}

// List retrieves all members of an organization
// GET /api/organizations/{orgID}/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.memberSvc.List(r.Context(), identity, orgID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// UpdateRole changes a member's organization role
// PATCH /api/organizations/{orgID}/members/{userID}
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}
	userID := r.PathValue("userID")

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.UpdateMemberRoleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberSvc.UpdateRole(r.Context(), identity, orgID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// Remove detaches a member from the organization
// DELETE /api/organizations/{orgID}/members/{userID}
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}
	userID := r.PathValue("userID")

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.memberSvc.Remove(r.Context(), identity, orgID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateInvitation invites a user to the organization
// POST /api/organizations/{orgID}/invitations
func (h *MemberHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
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

	var req services.CreateInvitationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.inviteSvc.Create(r.Context(), identity, orgID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, inv)
}

// ListInvitations retrieves all invitations for an organization
// GET /api/organizations/{orgID}/invitations
func (h *MemberHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
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

	invitations, err := h.inviteSvc.List(r.Context(), identity, orgID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, invitations)
}

// RevokeInvitation withdraws a pending invitation
// DELETE /api/organizations/{orgID}/invitations/{invitationID}
func (h *MemberHandler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseUUID(r.PathValue("orgID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid organization ID format")
		return
	}
	invitationID, err := parseUUID(r.PathValue("invitationID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invitation ID format")
		return
	}

	identity, err := resolveIdentity(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.inviteSvc.Revoke(r.Context(), identity, orgID, invitationID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AcceptInvitation redeems an invitation token for the caller
// POST /api/invitations/accept
func (h *MemberHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.identitySvc)
	if err != nil {
		handleError(w, err)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := parseUUID(req.Token); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invitation token format")
		return
	}

	user, err := h.inviteSvc.Accept(r.Context(), actor, req.Token)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
