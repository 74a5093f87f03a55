package service

import (
	"context"
	"errors"
	"testing"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

const testProjectID = "3c9f2a1b-6d5e-4f70-8a1b-2c3d4e5f6a70"

type projectMemberFixture struct {
	svc      services.ProjectMemberService
	projects *fakeProjectRepo
	members  *fakeProjectMemberRepo
	users    *fakeUserRepo
	audit    *fakeAuditRepo
}

func newProjectMemberFixture() *projectMemberFixture {
	f := &projectMemberFixture{
		projects: newFakeProjectRepo(),
		members:  newFakeProjectMemberRepo(),
		users:    newFakeUserRepo(),
		audit:    &fakeAuditRepo{},
	}
	f.projects.projects[testProjectID] = &models.Project{ID: testProjectID, OrgID: testOrgID, Name: "Docs", Slug: "docs"}
	f.svc = NewProjectMemberService(f.projects, f.members, f.users, f.audit, fakeTxManager{}, testLogger())
	return f
}

func (f *projectMemberFixture) addMember(userID string, role rbac.ProjectRole) {
	f.members.members[memberKey{testProjectID, userID}] = &models.ProjectMember{
		ProjectID: testProjectID,
		UserID:    userID,
		Role:      string(role),
	}
}

// memberIdentity is an org USER whose reach comes entirely from the project
// membership row.
func memberIdentity(userID string, role rbac.ProjectRole) rbac.Identity {
	return rbac.Identity{
		UserID:      userID,
		OrgID:       testOrgID,
		OrgRole:     rbac.OrgRoleUser,
		Memberships: map[string]rbac.ProjectRole{testProjectID: role},
	}
}

func TestProjectMemberAdd(t *testing.T) {
	tests := []struct {
		name     string
		identity rbac.Identity
		newRole  string
		wantErr  error
	}{
		{
			name:     "project owner adds an admin",
			identity: memberIdentity("owner", rbac.ProjectRoleOwner),
			newRole:  "ADMIN",
		},
		{
			name:     "project admin adds a member",
			identity: memberIdentity("admin", rbac.ProjectRoleAdmin),
			newRole:  "MEMBER",
		},
		{
			name:     "project admin cannot add another admin",
			identity: memberIdentity("admin", rbac.ProjectRoleAdmin),
			newRole:  "ADMIN",
			wantErr:  domain.ErrForbidden,
		},
		{
			name:     "org admin without membership acts as owner",
			identity: orgIdentity("orgadmin", rbac.OrgRoleAdmin),
			newRole:  "ADMIN",
		},
		{
			name:     "project member lacks manage-members",
			identity: memberIdentity("member", rbac.ProjectRoleMember),
			newRole:  "VIEWER",
			wantErr:  domain.ErrForbidden,
		},
		{
			name:     "unknown role rejected",
			identity: memberIdentity("owner", rbac.ProjectRoleOwner),
			newRole:  "MANAGER",
			wantErr:  domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProjectMemberFixture()
			seedMember(f.users, "target", "target@example.com", rbac.OrgRoleUser)

			req := &services.AddProjectMemberRequest{UserID: "target", Role: tt.newRole}
			member, err := f.svc.Add(context.Background(), tt.identity, testProjectID, req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Add() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() unexpected error: %v", err)
			}
			if member.Role != tt.newRole {
				t.Errorf("Role = %q, want %q", member.Role, tt.newRole)
			}
			if len(f.audit.events) != 1 || f.audit.events[0].Action != "project_member.added" {
				t.Errorf("audit events = %+v, want one project_member.added", f.audit.events)
			}
		})
	}
}

func TestProjectMemberAddOutsideOrg(t *testing.T) {
	f := newProjectMemberFixture()
	f.addMember("owner", rbac.ProjectRoleOwner)

	// Target belongs to a different organization.
	otherOrg := "9e8d7c6b-5a49-4837-a625-140302010099"
	f.users.users["stranger"] = &models.User{ID: "stranger", Email: "s@example.com", OrgID: &otherOrg, OrgRole: "USER"}

	req := &services.AddProjectMemberRequest{UserID: "stranger", Role: "MEMBER"}
	_, err := f.svc.Add(context.Background(), memberIdentity("owner", rbac.ProjectRoleOwner), testProjectID, req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Add() error = %v, want ErrNotFound", err)
	}
}

func TestProjectMemberUpdateRole(t *testing.T) {
	f := newProjectMemberFixture()
	f.addMember("owner", rbac.ProjectRoleOwner)
	f.addMember("target", rbac.ProjectRoleMember)

	req := &services.UpdateProjectMemberRequest{Role: "ADMIN"}
	member, err := f.svc.UpdateRole(context.Background(), memberIdentity("owner", rbac.ProjectRoleOwner), testProjectID, "target", req)
	if err != nil {
		t.Fatalf("UpdateRole() unexpected error: %v", err)
	}
	if member.Role != "ADMIN" {
		t.Errorf("Role = %q, want ADMIN", member.Role)
	}
}

func TestProjectMemberUpdateRoleSelf(t *testing.T) {
	f := newProjectMemberFixture()
	f.addMember("owner", rbac.ProjectRoleOwner)

	req := &services.UpdateProjectMemberRequest{Role: "MEMBER"}
	_, err := f.svc.UpdateRole(context.Background(), memberIdentity("owner", rbac.ProjectRoleOwner), testProjectID, "owner", req)
	if !errors.Is(err, domain.ErrSelfModification) {
		t.Fatalf("UpdateRole() error = %v, want ErrSelfModification", err)
	}
}

func TestProjectMemberLastOwnerProtection(t *testing.T) {
	t.Run("demoting the last owner", func(t *testing.T) {
		f := newProjectMemberFixture()
		f.addMember("owner", rbac.ProjectRoleOwner)

		req := &services.UpdateProjectMemberRequest{Role: "ADMIN"}
		_, err := f.svc.UpdateRole(context.Background(), orgIdentity("orgadmin", rbac.OrgRoleAdmin), testProjectID, "owner", req)
		if !errors.Is(err, domain.ErrLastOwner) {
			t.Fatalf("UpdateRole() error = %v, want ErrLastOwner", err)
		}
	})

	t.Run("removing the last owner", func(t *testing.T) {
		f := newProjectMemberFixture()
		f.addMember("owner", rbac.ProjectRoleOwner)

		err := f.svc.Remove(context.Background(), orgIdentity("orgadmin", rbac.OrgRoleAdmin), testProjectID, "owner")
		if !errors.Is(err, domain.ErrLastOwner) {
			t.Fatalf("Remove() error = %v, want ErrLastOwner", err)
		}
	})

	t.Run("demoting one of two owners", func(t *testing.T) {
		f := newProjectMemberFixture()
		f.addMember("owner", rbac.ProjectRoleOwner)
		f.addMember("cofounder", rbac.ProjectRoleOwner)

		req := &services.UpdateProjectMemberRequest{Role: "ADMIN"}
		if _, err := f.svc.UpdateRole(context.Background(), memberIdentity("owner", rbac.ProjectRoleOwner), testProjectID, "cofounder", req); err != nil {
			t.Fatalf("UpdateRole() unexpected error: %v", err)
		}
	})
}

func TestProjectMemberRemove(t *testing.T) {
	f := newProjectMemberFixture()
	f.addMember("owner", rbac.ProjectRoleOwner)
	f.addMember("target", rbac.ProjectRoleMember)

	if err := f.svc.Remove(context.Background(), memberIdentity("owner", rbac.ProjectRoleOwner), testProjectID, "target"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}
	if _, err := f.members.Get(context.Background(), testProjectID, "target"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("membership still present after Remove")
	}
}

func TestProjectMemberCrossTenant(t *testing.T) {
	f := newProjectMemberFixture()

	// Admin of a different organization, even with a permission-rich role,
	// never crosses the tenancy boundary.
	outsider := rbac.Identity{UserID: "outsider", OrgID: "9e8d7c6b-5a49-4837-a625-140302010099", OrgRole: rbac.OrgRoleAdmin}
	_, err := f.svc.List(context.Background(), outsider, testProjectID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("List() error = %v, want ErrForbidden", err)
	}
}
