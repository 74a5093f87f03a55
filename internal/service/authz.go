package service

import (
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// authorize runs the access guard and converts a denial into a domain error.
// Permissions are resolved fresh on every call; nothing is memoized between
// requests.
func authorize(identity rbac.Identity, projectID string, required ...rbac.Permission) error {
	decision := rbac.Authorize(identity, required, projectID, rbac.ModeAll)
	if !decision.Allowed {
		return domain.AccessDenied(decision)
	}
	return nil
}

// authorizeAny is the disjunctive variant: at least one required permission
// must be held.
func authorizeAny(identity rbac.Identity, projectID string, required ...rbac.Permission) error {
	decision := rbac.Authorize(identity, required, projectID, rbac.ModeAny)
	if !decision.Allowed {
		return domain.AccessDenied(decision)
	}
	return nil
}

// requireSameOrg rejects cross-tenant access. Platform super admins pass for
// every organization; everyone else must belong to the target organization.
// Holding a permission never overrides tenancy.
func requireSameOrg(identity rbac.Identity, orgID string) error {
	if identity.OrgRole == rbac.OrgRoleSuperAdmin {
		return nil
	}
	if identity.OrgID == "" || identity.OrgID != orgID {
		return domain.AccessDenied(rbac.Decision{Reason: rbac.DenyNotOrganizationMember})
	}
	return nil
}

// effectiveProjectRole returns the role the identity acts with inside a
// project: their membership role, or OWNER-equivalent for elevated
// organization roles, which act on every project without a membership row.
func effectiveProjectRole(identity rbac.Identity, projectID string) (rbac.ProjectRole, bool) {
	if identity.OrgRole.Elevated() {
		return rbac.ProjectRoleOwner, true
	}
	role, ok := identity.Membership(projectID)
	return role, ok
}
