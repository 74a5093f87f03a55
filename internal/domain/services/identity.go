package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// Actor is the authenticated caller of a service operation: the rbac identity
// snapshot plus the profile claims from the verified token. Email and Name are
// only trusted for mirror-record creation (onboarding, invite acceptance).
type Actor struct {
	Identity rbac.Identity
	Email    string
	Name     string
}

// Me bundles the caller's mirror record with their organization for the
// profile endpoint. User is nil before first onboarding.
type Me struct {
	User         *models.User         `json:"user"`
	Organization *models.Organization `json:"organization,omitempty"`
}

// IdentityService loads the request-scoped identity snapshot that every
// authorization decision runs against. Resolution happens fresh on each
// request; permission data is never cached across requests, so role and
// membership changes take effect on the next call.
type IdentityService interface {
	// Resolve maps a verified token subject to an rbac.Identity. A user
	// with no mirror record resolves to an identity with no organization
	// role; everything except onboarding then denies.
	Resolve(ctx context.Context, userID string) (rbac.Identity, error)

	// Me returns the caller's mirror record and organization.
	Me(ctx context.Context, userID string) (*Me, error)

	// PermissionsFor exposes the effective permission set for UI
	// conditional rendering. Empty projectID means organization scope.
	PermissionsFor(ctx context.Context, userID, projectID string) ([]rbac.Permission, error)
}
