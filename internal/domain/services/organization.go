package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/plans"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// CreateOrganizationRequest represents a request to create an organization
type CreateOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UpdateOrganizationRequest represents a request to update an organization
type UpdateOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Billing is the mocked billing view: the organization's plan limits plus
// live usage counts. No payment provider is involved.
type Billing struct {
	Plan     plans.Plan `json:"plan"`
	Members  int64      `json:"members"`
	Projects int64      `json:"projects"`
}

// OrganizationService defines business logic operations for organizations
type OrganizationService interface {
	// Create is the onboarding entry point: it creates the organization
	// and mirrors the creator as its first ORG_ADMIN in one transaction.
	// The actor must not already belong to an organization.
	Create(ctx context.Context, actor Actor, req *CreateOrganizationRequest) (*models.Organization, error)

	// Get retrieves an organization the caller may view
	Get(ctx context.Context, identity rbac.Identity, orgID string) (*models.Organization, error)

	// List returns all organizations for platform super admins, or the
	// caller's own organization otherwise
	List(ctx context.Context, identity rbac.Identity) ([]models.Organization, error)

	// Update changes an organization's name and slug
	Update(ctx context.Context, identity rbac.Identity, orgID string, req *UpdateOrganizationRequest) (*models.Organization, error)

	// Delete soft-deletes an organization (platform super admin only)
	Delete(ctx context.Context, identity rbac.Identity, orgID string) error

	// Billing returns the organization's plan limits and usage counts
	Billing(ctx context.Context, identity rbac.Identity, orgID string) (*Billing, error)

	// AuditLog returns recent role and membership mutations
	AuditLog(ctx context.Context, identity rbac.Identity, orgID string, limit int) ([]models.AuditEvent, error)
}
