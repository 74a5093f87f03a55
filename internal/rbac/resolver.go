package rbac

// Identity is a request-scoped snapshot of who the caller is: their user ID,
// organization, organization role, and project memberships. It is loaded from
// the data layer once per request and passed by value; the zero value is an
// unauthenticated caller.
type Identity struct {
	UserID      string
	OrgID       string
	OrgRole     OrgRole
	Memberships map[string]ProjectRole // project ID → role
}

// Authenticated reports whether the identity belongs to a signed-in user.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Membership returns the caller's role in the given project, if any.
func (id Identity) Membership(projectID string) (ProjectRole, bool) {
	role, ok := id.Memberships[projectID]
	return role, ok
}

// Permissions resolves the identity's effective permission set for an
// optional target project. Empty projectID means an organization-level check.
func (id Identity) Permissions(projectID string) PermissionSet {
	return Resolve(id.OrgRole, id.Memberships, projectID)
}

// Resolve computes an effective permission set from an organization role, the
// caller's project memberships, and an optional target project.
//
// The organization role contributes its full set regardless of target: an
// org-wide grant is not narrowed by project scope. A project membership can
// only add permissions on top, never subtract. A missing membership adds
// nothing; holders of organization-wide grants keep them on projects they
// never joined, and everyone else falls back to whatever their org role
// allows.
func Resolve(orgRole OrgRole, memberships map[string]ProjectRole, projectID string) PermissionSet {
	// Platform operators hold the entire catalog; memberships are irrelevant.
	if orgRole == OrgRoleSuperAdmin {
		return NewPermissionSet(catalog...)
	}

	perms := OrgRolePermissions(orgRole)
	if projectID == "" {
		return perms
	}

	if role, ok := memberships[projectID]; ok {
		perms = perms.Union(projectRoleGrants[role])
	}
	return perms
}
