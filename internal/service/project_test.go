package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/plans"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

type projectFixture struct {
	svc      services.ProjectService
	projects *fakeProjectRepo
	members  *fakeProjectMemberRepo
	orgs     *fakeOrgRepo
	audit    *fakeAuditRepo
}

func newProjectFixture(t *testing.T, plan string) *projectFixture {
	t.Helper()

	registry, err := plans.NewRegistry()
	if err != nil {
		t.Fatalf("failed to load plan catalog: %v", err)
	}

	f := &projectFixture{
		projects: newFakeProjectRepo(),
		members:  newFakeProjectMemberRepo(),
		orgs:     newFakeOrgRepo(),
		audit:    &fakeAuditRepo{},
	}
	f.orgs.orgs[testOrgID] = &models.Organization{ID: testOrgID, Name: "Acme", Slug: "acme", Plan: plan}
	f.svc = NewProjectService(f.projects, f.members, f.orgs, f.audit, fakeTxManager{}, registry, testLogger())
	return f
}

func TestProjectCreate(t *testing.T) {
	f := newProjectFixture(t, "team")
	identity := orgIdentity("creator", rbac.OrgRoleManager)

	project, err := f.svc.Create(context.Background(), identity, &services.CreateProjectRequest{
		Name:        "Docs Site",
		Description: "Public documentation",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if project.Slug != "docs-site" {
		t.Errorf("Slug = %q, want derived slug docs-site", project.Slug)
	}

	// The creator must hold OWNER from the moment the project exists.
	member, err := f.members.Get(context.Background(), project.ID, "creator")
	if err != nil {
		t.Fatalf("creator has no membership row: %v", err)
	}
	if member.Role != string(rbac.ProjectRoleOwner) {
		t.Errorf("creator role = %q, want OWNER", member.Role)
	}
}

func TestProjectCreateDenied(t *testing.T) {
	tests := []struct {
		name     string
		identity rbac.Identity
		wantErr  error
	}{
		{
			name:     "org user lacks projects:create",
			identity: orgIdentity("user", rbac.OrgRoleUser),
			wantErr:  domain.ErrForbidden,
		},
		{
			name:     "viewer lacks projects:create",
			identity: orgIdentity("viewer", rbac.OrgRoleViewer),
			wantErr:  domain.ErrForbidden,
		},
		{
			name:     "no organization",
			identity: rbac.Identity{UserID: "drifter"},
			wantErr:  domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProjectFixture(t, "team")
			_, err := f.svc.Create(context.Background(), tt.identity, &services.CreateProjectRequest{Name: "Docs"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProjectCreateQuota(t *testing.T) {
	f := newProjectFixture(t, "free") // 3 projects
	identity := orgIdentity("creator", rbac.OrgRoleAdmin)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Create(context.Background(), identity, &services.CreateProjectRequest{
			Name: fmt.Sprintf("Project %d", i),
			Slug: fmt.Sprintf("project-%d", i),
		}); err != nil {
			t.Fatalf("Create() #%d unexpected error: %v", i, err)
		}
	}

	_, err := f.svc.Create(context.Background(), identity, &services.CreateProjectRequest{Name: "One Too Many"})
	var quotaErr *domain.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("Create() error = %v, want QuotaExceededError", err)
	}
	if quotaErr.Resource != "projects" || quotaErr.Limit != 3 {
		t.Errorf("quota = %+v, want projects/3", quotaErr)
	}
}

func TestProjectGetCrossTenant(t *testing.T) {
	f := newProjectFixture(t, "team")
	f.projects.projects[testProjectID] = &models.Project{ID: testProjectID, OrgID: testOrgID, Name: "Docs", Slug: "docs"}

	outsider := rbac.Identity{UserID: "outsider", OrgID: "9e8d7c6b-5a49-4837-a625-140302010099", OrgRole: rbac.OrgRoleAdmin}
	if _, err := f.svc.Get(context.Background(), outsider, testProjectID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Get() error = %v, want ErrForbidden", err)
	}

	// A platform super admin crosses tenant boundaries.
	root := rbac.Identity{UserID: "root", OrgRole: rbac.OrgRoleSuperAdmin}
	if _, err := f.svc.Get(context.Background(), root, testProjectID); err != nil {
		t.Fatalf("Get() as super admin unexpected error: %v", err)
	}
}

func TestProjectUpdateValidation(t *testing.T) {
	f := newProjectFixture(t, "team")
	f.projects.projects[testProjectID] = &models.Project{ID: testProjectID, OrgID: testOrgID, Name: "Docs", Slug: "docs"}
	identity := orgIdentity("admin", rbac.OrgRoleAdmin)

	tests := []struct {
		name string
		req  services.UpdateProjectRequest
	}{
		{name: "empty name", req: services.UpdateProjectRequest{Name: "   "}},
		{name: "bad slug", req: services.UpdateProjectRequest{Name: "Docs", Slug: "Has Spaces"}},
		{name: "uppercase slug", req: services.UpdateProjectRequest{Name: "Docs", Slug: "Docs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Update(context.Background(), identity, testProjectID, &tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Update() error = %v, want ErrValidation", err)
			}
		})
	}
}
