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

const testOrgID = "8b8e8a3e-7c1d-4f68-9a9e-1d2f3a4b5c6d"

func orgIdentity(userID string, role rbac.OrgRole) rbac.Identity {
	return rbac.Identity{
		UserID:  userID,
		OrgID:   testOrgID,
		OrgRole: role,
	}
}

func seedMember(users *fakeUserRepo, id, email string, role rbac.OrgRole) {
	orgID := testOrgID
	users.users[id] = &models.User{
		ID:      id,
		Email:   email,
		Name:    id,
		OrgID:   &orgID,
		OrgRole: string(role),
	}
}

func newMemberService(users *fakeUserRepo, members *fakeProjectMemberRepo, audit *fakeAuditRepo) services.MemberService {
	return NewMemberService(users, members, audit, fakeTxManager{}, testLogger())
}

func TestMemberServiceUpdateRole(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  rbac.OrgRole
		targetRole rbac.OrgRole
		newRole    string
		wantErr    error
	}{
		{
			name:       "admin promotes user to manager",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleUser,
			newRole:    "MANAGER",
		},
		{
			name:       "admin demotes manager to viewer",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleManager,
			newRole:    "VIEWER",
		},
		{
			name:       "manager lacks the manage permission",
			actorRole:  rbac.OrgRoleManager,
			targetRole: rbac.OrgRoleViewer,
			newRole:    "USER",
			wantErr:    domain.ErrForbidden,
		},
		{
			name:       "admin cannot promote user to super admin",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleUser,
			newRole:    "SUPER_ADMIN",
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "admin demotes a peer admin",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleAdmin,
			newRole:    "USER",
		},
		{
			name:       "admin cannot touch a super admin",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleSuperAdmin,
			newRole:    "USER",
			wantErr:    domain.ErrForbidden,
		},
		{
			name:       "unknown role rejected",
			actorRole:  rbac.OrgRoleAdmin,
			targetRole: rbac.OrgRoleUser,
			newRole:    "OWNER",
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "user lacks the manage permission",
			actorRole:  rbac.OrgRoleUser,
			targetRole: rbac.OrgRoleViewer,
			newRole:    "USER",
			wantErr:    domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			audit := &fakeAuditRepo{}
			seedMember(users, "actor", "actor@example.com", tt.actorRole)
			seedMember(users, "target", "target@example.com", tt.targetRole)
			svc := newMemberService(users, newFakeProjectMemberRepo(), audit)

			got, err := svc.UpdateRole(context.Background(), orgIdentity("actor", tt.actorRole), testOrgID, "target", &services.UpdateMemberRoleRequest{Role: tt.newRole})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateRole() error = %v, want %v", err, tt.wantErr)
				}
				if len(audit.events) != 0 {
					t.Errorf("audit events recorded on failed update: %d", len(audit.events))
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateRole() unexpected error: %v", err)
			}
			if got.OrgRole != tt.newRole {
				t.Errorf("OrgRole = %q, want %q", got.OrgRole, tt.newRole)
			}
			if len(audit.events) != 1 || audit.events[0].Action != "member.role_updated" {
				t.Errorf("audit events = %+v, want one member.role_updated", audit.events)
			}
		})
	}
}

func TestMemberServiceUpdateRoleSelf(t *testing.T) {
	users := newFakeUserRepo()
	seedMember(users, "actor", "actor@example.com", rbac.OrgRoleAdmin)
	svc := newMemberService(users, newFakeProjectMemberRepo(), &fakeAuditRepo{})

	_, err := svc.UpdateRole(context.Background(), orgIdentity("actor", rbac.OrgRoleAdmin), testOrgID, "actor", &services.UpdateMemberRoleRequest{Role: "USER"})
	if !errors.Is(err, domain.ErrSelfModification) {
		t.Fatalf("UpdateRole() error = %v, want ErrSelfModification", err)
	}
}

func TestMemberServiceUpdateRoleCrossOrg(t *testing.T) {
	users := newFakeUserRepo()
	seedMember(users, "target", "target@example.com", rbac.OrgRoleUser)
	svc := newMemberService(users, newFakeProjectMemberRepo(), &fakeAuditRepo{})

	// Actor belongs to a different organization.
	actor := rbac.Identity{UserID: "actor", OrgID: "0f0e0d0c-0b0a-4a49-8887-868584838281", OrgRole: rbac.OrgRoleAdmin}
	_, err := svc.UpdateRole(context.Background(), actor, testOrgID, "target", &services.UpdateMemberRoleRequest{Role: "USER"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpdateRole() error = %v, want ErrForbidden", err)
	}
}

func TestMemberServiceRemove(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeProjectMemberRepo()
	audit := &fakeAuditRepo{}
	seedMember(users, "actor", "actor@example.com", rbac.OrgRoleAdmin)
	seedMember(users, "target", "target@example.com", rbac.OrgRoleUser)
	members.members[memberKey{"proj-1", "target"}] = &models.ProjectMember{ProjectID: "proj-1", UserID: "target", Role: "MEMBER"}
	members.members[memberKey{"proj-2", "target"}] = &models.ProjectMember{ProjectID: "proj-2", UserID: "target", Role: "VIEWER"}
	svc := newMemberService(users, members, audit)

	if err := svc.Remove(context.Background(), orgIdentity("actor", rbac.OrgRoleAdmin), testOrgID, "target"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	target := users.users["target"]
	if target.OrgID != nil {
		t.Errorf("target still attached to org %q", *target.OrgID)
	}
	if got, _ := members.ListByUser(context.Background(), "target"); len(got) != 0 {
		t.Errorf("target still holds %d project memberships", len(got))
	}
	if len(audit.events) != 1 || audit.events[0].Action != "member.removed" {
		t.Errorf("audit events = %+v, want one member.removed", audit.events)
	}
}

func TestMemberServiceRemoveSelf(t *testing.T) {
	users := newFakeUserRepo()
	seedMember(users, "actor", "actor@example.com", rbac.OrgRoleAdmin)
	svc := newMemberService(users, newFakeProjectMemberRepo(), &fakeAuditRepo{})

	err := svc.Remove(context.Background(), orgIdentity("actor", rbac.OrgRoleAdmin), testOrgID, "actor")
	if !errors.Is(err, domain.ErrSelfModification) {
		t.Fatalf("Remove() error = %v, want ErrSelfModification", err)
	}
}

func TestMemberServiceRemoveOutranked(t *testing.T) {
	users := newFakeUserRepo()
	seedMember(users, "actor", "actor@example.com", rbac.OrgRoleManager)
	seedMember(users, "target", "target@example.com", rbac.OrgRoleAdmin)
	svc := newMemberService(users, newFakeProjectMemberRepo(), &fakeAuditRepo{})

	err := svc.Remove(context.Background(), orgIdentity("actor", rbac.OrgRoleManager), testOrgID, "target")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Remove() error = %v, want ErrForbidden", err)
	}
}
