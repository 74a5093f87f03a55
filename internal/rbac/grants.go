package rbac

// Static grant tables. Each role's set is built from the next lower role plus
// its own additions, so every role is a strict superset of the roles below it
// by construction. These tables are the single source of truth for what a
// role means; changing access for a role is an edit here, not a data
// migration.

var (
	orgViewerGrants = NewPermissionSet(
		PermOrganizationView,
		PermProjectsView,
	)

	orgUserGrants = orgViewerGrants.With(
		PermUsersView,
		PermDocumentsView,
		PermExportData,
	)

	orgManagerGrants = orgUserGrants.With(
		PermUsersInvite,
		PermProjectsCreate,
		PermProjectsEdit,
		PermProjectsManageMembers,
		PermAnalyticsView,
	)

	orgAdminGrants = orgManagerGrants.With(
		PermOrganizationManage,
		PermOrganizationBilling,
		PermUsersManage,
		PermUsersRemove,
		PermProjectsDelete,
		PermDocumentsCreate,
		PermDocumentsEdit,
		PermDocumentsDelete,
		PermDocumentsPublish,
	)

	// SUPER_ADMIN holds the full catalog. organization:delete is the only
	// permission reserved to it.
	orgSuperAdminGrants = orgAdminGrants.With(
		PermOrganizationDelete,
	)
)

var (
	projectViewerGrants = NewPermissionSet(
		PermProjectsView,
		PermDocumentsView,
	)

	projectMemberGrants = projectViewerGrants.With(
		PermDocumentsCreate,
		PermDocumentsEdit,
		PermExportData,
	)

	projectAdminGrants = projectMemberGrants.With(
		PermProjectsEdit,
		PermProjectsManageMembers,
		PermDocumentsDelete,
		PermDocumentsPublish,
		PermAnalyticsView,
	)

	projectOwnerGrants = projectAdminGrants.With(
		PermProjectsDelete,
	)
)

var orgRoleGrants = map[OrgRole]PermissionSet{
	OrgRoleSuperAdmin: orgSuperAdminGrants,
	OrgRoleAdmin:      orgAdminGrants,
	OrgRoleManager:    orgManagerGrants,
	OrgRoleUser:       orgUserGrants,
	OrgRoleViewer:     orgViewerGrants,
}

var projectRoleGrants = map[ProjectRole]PermissionSet{
	ProjectRoleOwner:  projectOwnerGrants,
	ProjectRoleAdmin:  projectAdminGrants,
	ProjectRoleMember: projectMemberGrants,
	ProjectRoleViewer: projectViewerGrants,
}

// OrgRolePermissions returns the permissions granted by an organization role.
// Unknown roles get an empty set. The result is a copy; the grant tables are
// never exposed for mutation.
func OrgRolePermissions(r OrgRole) PermissionSet {
	return orgRoleGrants[r].Clone()
}

// ProjectRolePermissions returns the permissions granted by a project role.
// Unknown roles get an empty set.
func ProjectRolePermissions(r ProjectRole) PermissionSet {
	return projectRoleGrants[r].Clone()
}
