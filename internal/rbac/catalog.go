// Package rbac implements role and permission resolution for the platform.
//
// Permissions form a closed catalog. Roles come in two independent hierarchies:
// organization roles (one per user) and project roles (at most one per user per
// project). A user's effective permissions are recomputed from the static grant
// tables on every check; nothing is cached across requests, so a role change
// takes effect on the next request.
package rbac

import "sort"

// Permission identifies a single grantable capability, formatted as
// "resource:action". The catalog is closed: permissions are never created at
// runtime and the API never accepts free-form permission strings.
type Permission string

const (
	// Organization
	PermOrganizationView    Permission = "organization:view"
	PermOrganizationManage  Permission = "organization:manage"
	PermOrganizationBilling Permission = "organization:billing"
	PermOrganizationDelete  Permission = "organization:delete"

	// Users and membership
	PermUsersView   Permission = "users:view"
	PermUsersInvite Permission = "users:invite"
	PermUsersManage Permission = "users:manage"
	PermUsersRemove Permission = "users:remove"

	// Projects
	PermProjectsView          Permission = "projects:view"
	PermProjectsCreate        Permission = "projects:create"
	PermProjectsEdit          Permission = "projects:edit"
	PermProjectsDelete        Permission = "projects:delete"
	PermProjectsManageMembers Permission = "projects:manage-members"

	// Documents
	PermDocumentsView    Permission = "documents:view"
	PermDocumentsCreate  Permission = "documents:create"
	PermDocumentsEdit    Permission = "documents:edit"
	PermDocumentsDelete  Permission = "documents:delete"
	PermDocumentsPublish Permission = "documents:publish"

	// Analytics and export
	PermAnalyticsView Permission = "analytics:view"
	PermExportData    Permission = "export:data"
)

var catalog = []Permission{
	PermOrganizationView,
	PermOrganizationManage,
	PermOrganizationBilling,
	PermOrganizationDelete,
	PermUsersView,
	PermUsersInvite,
	PermUsersManage,
	PermUsersRemove,
	PermProjectsView,
	PermProjectsCreate,
	PermProjectsEdit,
	PermProjectsDelete,
	PermProjectsManageMembers,
	PermDocumentsView,
	PermDocumentsCreate,
	PermDocumentsEdit,
	PermDocumentsDelete,
	PermDocumentsPublish,
	PermAnalyticsView,
	PermExportData,
}

var catalogSet = func() map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(catalog))
	for _, p := range catalog {
		set[p] = struct{}{}
	}
	return set
}()

// Catalog returns every permission in the catalog, sorted. The returned slice
// is a copy and safe to modify.
func Catalog() []Permission {
	out := make([]Permission, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether p is part of the catalog.
func (p Permission) Valid() bool {
	_, ok := catalogSet[p]
	return ok
}

func (p Permission) String() string {
	return string(p)
}
