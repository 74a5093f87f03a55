package rbac

import (
	"reflect"
	"testing"
)

func memberIdentity(orgRole OrgRole, memberships map[string]ProjectRole) Identity {
	return Identity{
		UserID:      "user_2x9YgQ",
		OrgID:       "6a38a1c2-90cc-4b7e-b979-55f2915c5c83",
		OrgRole:     orgRole,
		Memberships: memberships,
	}
}

func TestAuthorizeDenyReasons(t *testing.T) {
	tests := []struct {
		name       string
		identity   Identity
		required   []Permission
		projectID  string
		mode       Mode
		wantAllow  bool
		wantReason DenyReason
	}{
		{
			name:       "zero identity is unauthenticated",
			identity:   Identity{},
			required:   []Permission{PermProjectsView},
			wantAllow:  false,
			wantReason: DenyUnauthenticated,
		},
		{
			name:       "authenticated but no org role",
			identity:   Identity{UserID: "user_2x9YgQ"},
			required:   []Permission{PermProjectsView},
			wantAllow:  false,
			wantReason: DenyNotOrganizationMember,
		},
		{
			name:       "unknown role string is treated as no membership",
			identity:   Identity{UserID: "user_2x9YgQ", OrgRole: OrgRole("LEGACY")},
			required:   []Permission{PermProjectsView},
			wantAllow:  false,
			wantReason: DenyNotOrganizationMember,
		},
		{
			name:       "non-member on project-scoped check",
			identity:   memberIdentity(OrgRoleUser, nil),
			required:   []Permission{PermDocumentsEdit},
			projectID:  testProjectID,
			wantAllow:  false,
			wantReason: DenyNotProjectMember,
		},
		{
			name:       "member lacking the permission",
			identity:   memberIdentity(OrgRoleUser, map[string]ProjectRole{testProjectID: ProjectRoleViewer}),
			required:   []Permission{PermDocumentsEdit},
			projectID:  testProjectID,
			wantAllow:  false,
			wantReason: DenyInsufficientPermissions,
		},
		{
			name:       "elevated role is never a project outsider",
			identity:   memberIdentity(OrgRoleAdmin, nil),
			required:   []Permission{PermOrganizationDelete},
			projectID:  testProjectID,
			wantAllow:  false,
			wantReason: DenyInsufficientPermissions,
		},
		{
			name:       "org-level check lacking permission",
			identity:   memberIdentity(OrgRoleViewer, nil),
			required:   []Permission{PermProjectsCreate},
			wantAllow:  false,
			wantReason: DenyInsufficientPermissions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.identity, tt.required, tt.projectID, tt.mode)
			if got.Allowed != tt.wantAllow {
				t.Errorf("Authorize() allowed = %v, want %v", got.Allowed, tt.wantAllow)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Authorize() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestAuthorizeModes(t *testing.T) {
	// Org USER: has users:view and export:data, lacks users:invite.
	id := memberIdentity(OrgRoleUser, nil)

	tests := []struct {
		name     string
		required []Permission
		mode     Mode
		want     bool
	}{
		{"all with every permission held", []Permission{PermUsersView, PermExportData}, ModeAll, true},
		{"all with one permission missing", []Permission{PermUsersView, PermUsersInvite}, ModeAll, false},
		{"any with one permission held", []Permission{PermUsersInvite, PermExportData}, ModeAny, true},
		{"any with none held", []Permission{PermUsersInvite, PermUsersManage}, ModeAny, false},
		{"single permission defaults to all", []Permission{PermUsersView}, ModeAll, true},
		{"empty requirement under all is vacuous", nil, ModeAll, true},
		{"empty requirement under any denies", nil, ModeAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(id, tt.required, "", tt.mode)
			if got.Allowed != tt.want {
				t.Errorf("Authorize(mode=%s) allowed = %v, want %v", tt.mode, got.Allowed, tt.want)
			}
		})
	}
}

func TestAuthorizeMissingLists(t *testing.T) {
	id := memberIdentity(OrgRoleUser, nil)

	got := Authorize(id, []Permission{PermUsersView, PermUsersInvite, PermUsersManage}, "", ModeAll)
	if got.Allowed {
		t.Fatal("Authorize() allowed, want denial")
	}
	want := []Permission{PermUsersInvite, PermUsersManage}
	if !reflect.DeepEqual(got.Missing, want) {
		t.Errorf("Authorize() missing = %v, want %v", got.Missing, want)
	}
}

// The three scenarios every role change has to keep working.
func TestAuthorizeScenarios(t *testing.T) {
	t.Run("org USER with project MEMBER edits but cannot manage members", func(t *testing.T) {
		id := memberIdentity(OrgRoleUser, map[string]ProjectRole{testProjectID: ProjectRoleMember})

		edit := Authorize(id, []Permission{PermDocumentsEdit}, testProjectID, ModeAll)
		if !edit.Allowed {
			t.Errorf("documents:edit denied: %s missing %v", edit.Reason, edit.Missing)
		}

		manage := Authorize(id, []Permission{PermProjectsManageMembers}, testProjectID, ModeAll)
		if manage.Allowed {
			t.Error("projects:manage-members allowed, want denial")
		}
		if manage.Reason != DenyInsufficientPermissions {
			t.Errorf("reason = %q, want %q", manage.Reason, DenyInsufficientPermissions)
		}
	})

	t.Run("ORG_ADMIN keeps org-wide document rights on projects they never joined", func(t *testing.T) {
		id := memberIdentity(OrgRoleAdmin, nil)

		got := Authorize(id, []Permission{PermDocumentsDelete}, testProjectID, ModeAll)
		if !got.Allowed {
			t.Errorf("documents:delete denied: %s missing %v", got.Reason, got.Missing)
		}
	})

	t.Run("org VIEWER cannot create documents anywhere", func(t *testing.T) {
		id := memberIdentity(OrgRoleViewer, nil)

		org := Authorize(id, []Permission{PermDocumentsCreate}, "", ModeAll)
		if org.Allowed {
			t.Error("org-level documents:create allowed, want denial")
		}

		project := Authorize(id, []Permission{PermDocumentsCreate}, testProjectID, ModeAll)
		if project.Allowed {
			t.Error("project-level documents:create allowed, want denial")
		}
		if project.Reason != DenyNotProjectMember {
			t.Errorf("reason = %q, want %q", project.Reason, DenyNotProjectMember)
		}
	})
}

func TestAuthorizeSuperAdmin(t *testing.T) {
	id := Identity{UserID: "user_platform", OrgRole: OrgRoleSuperAdmin}

	got := Authorize(id, Catalog(), testProjectID, ModeAll)
	if !got.Allowed {
		t.Errorf("SUPER_ADMIN denied full catalog: %s missing %v", got.Reason, got.Missing)
	}
}

// Authorize is advertised as side-effect-free; the identity it is handed must
// come back untouched.
func TestAuthorizeDoesNotMutateIdentity(t *testing.T) {
	memberships := map[string]ProjectRole{testProjectID: ProjectRoleMember}
	id := memberIdentity(OrgRoleUser, memberships)

	Authorize(id, []Permission{PermDocumentsEdit, PermProjectsDelete}, testProjectID, ModeAll)
	Authorize(id, Catalog(), otherProjectID, ModeAny)

	if len(memberships) != 1 || memberships[testProjectID] != ProjectRoleMember {
		t.Errorf("memberships mutated: %v", memberships)
	}
}
