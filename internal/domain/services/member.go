package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// UpdateMemberRoleRequest represents a request to change a member's
// organization role
type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

// MemberService defines business logic operations for organization members
type MemberService interface {
	// List retrieves all members of an organization
	List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.User, error)

	// UpdateRole changes a member's organization role. The actor must
	// outrank both the member's current role and the new one, may not
	// target themselves, and may never assign SUPER_ADMIN.
	UpdateRole(ctx context.Context, identity rbac.Identity, orgID, userID string, req *UpdateMemberRoleRequest) (*models.User, error)

	// Remove detaches a member from the organization and drops their
	// project memberships. Self-removal is rejected.
	Remove(ctx context.Context, identity rbac.Identity, orgID, userID string) error
}

// CreateInvitationRequest represents a request to invite a user
type CreateInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InvitationService defines business logic operations for invitations
type InvitationService interface {
	// Create issues an invitation and emails its acceptance link. The
	// actor must be able to manage the invited role.
	Create(ctx context.Context, identity rbac.Identity, orgID string, req *CreateInvitationRequest) (*models.Invitation, error)

	// List retrieves all invitations for an organization
	List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.Invitation, error)

	// Revoke withdraws a pending invitation
	Revoke(ctx context.Context, identity rbac.Identity, orgID, invitationID string) error

	// Accept redeems an invitation token for the authenticated caller.
	// The caller's email must match the invited address, and the
	// invitation must be pending and unexpired. Creates or attaches the
	// mirror record with the invited role in one transaction.
	Accept(ctx context.Context, actor Actor, token string) (*models.User, error)
}
