package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// In-memory repository fakes for service tests. All maps are keyed by ID and
// none of them are safe for concurrent use; tests are single-goroutine.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeAuditRepo struct {
	events []models.AuditEvent
}

func (f *fakeAuditRepo) Record(_ context.Context, event *models.AuditEvent) error {
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeAuditRepo) ListByOrg(_ context.Context, orgID string, limit int) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	for _, e := range f.events {
		if e.OrgID == orgID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeOrgRepo struct {
	orgs map[string]*models.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*models.Organization)}
}

func (f *fakeOrgRepo) Create(_ context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*models.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, fmt.Errorf("organization: %w", domain.ErrNotFound)
	}
	copied := *org
	return &copied, nil
}

func (f *fakeOrgRepo) List(_ context.Context) ([]models.Organization, error) {
	var out []models.Organization
	for _, org := range f.orgs {
		out = append(out, *org)
	}
	return out, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, org *models.Organization) error {
	if _, ok := f.orgs[org.ID]; !ok {
		return fmt.Errorf("organization: %w", domain.ErrNotFound)
	}
	copied := *org
	f.orgs[org.ID] = &copied
	return nil
}

func (f *fakeOrgRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orgs[id]; !ok {
		return fmt.Errorf("organization: %w", domain.ErrNotFound)
	}
	delete(f.orgs, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (f *fakeUserRepo) ListByOrg(_ context.Context, orgID string) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.OrgID != nil && *user.OrgID == orgID {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id, orgRole string) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	user.OrgRole = orgRole
	return nil
}

func (f *fakeUserRepo) AttachToOrg(_ context.Context, id, orgID, orgRole string) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	user.OrgID = &orgID
	user.OrgRole = orgRole
	return nil
}

func (f *fakeUserRepo) RemoveFromOrg(_ context.Context, id string) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	user.OrgID = nil
	user.OrgRole = "VIEWER"
	return nil
}

func (f *fakeUserRepo) CountByOrg(_ context.Context, orgID string) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.OrgID != nil && *user.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, fmt.Errorf("project: %w", domain.ErrNotFound)
	}
	copied := *project
	return &copied, nil
}

func (f *fakeProjectRepo) ListByOrg(_ context.Context, orgID string) ([]models.Project, error) {
	var out []models.Project
	for _, project := range f.projects {
		if project.OrgID == orgID {
			out = append(out, *project)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return fmt.Errorf("project: %w", domain.ErrNotFound)
	}
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return fmt.Errorf("project: %w", domain.ErrNotFound)
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) CountByOrg(_ context.Context, orgID string) (int64, error) {
	var count int64
	for _, project := range f.projects {
		if project.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

type memberKey struct{ projectID, userID string }

type fakeProjectMemberRepo struct {
	members map[memberKey]*models.ProjectMember
}

func newFakeProjectMemberRepo() *fakeProjectMemberRepo {
	return &fakeProjectMemberRepo{members: make(map[memberKey]*models.ProjectMember)}
}

func (f *fakeProjectMemberRepo) Add(_ context.Context, member *models.ProjectMember) error {
	key := memberKey{member.ProjectID, member.UserID}
	if _, ok := f.members[key]; ok {
		return &domain.ConflictError{
			Message:      "user is already a member of this project",
			ResourceType: "project_member",
		}
	}
	f.members[key] = member
	return nil
}

func (f *fakeProjectMemberRepo) Get(_ context.Context, projectID, userID string) (*models.ProjectMember, error) {
	member, ok := f.members[memberKey{projectID, userID}]
	if !ok {
		return nil, fmt.Errorf("project member: %w", domain.ErrNotFound)
	}
	copied := *member
	return &copied, nil
}

func (f *fakeProjectMemberRepo) ListByProject(_ context.Context, projectID string) ([]models.ProjectMember, error) {
	var out []models.ProjectMember
	for key, member := range f.members {
		if key.projectID == projectID {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (f *fakeProjectMemberRepo) ListByUser(_ context.Context, userID string) (map[string]string, error) {
	out := make(map[string]string)
	for key, member := range f.members {
		if key.userID == userID {
			out[key.projectID] = member.Role
		}
	}
	return out, nil
}

func (f *fakeProjectMemberRepo) UpdateRole(_ context.Context, projectID, userID, role string) error {
	member, ok := f.members[memberKey{projectID, userID}]
	if !ok {
		return fmt.Errorf("project member: %w", domain.ErrNotFound)
	}
	member.Role = role
	return nil
}

func (f *fakeProjectMemberRepo) Remove(_ context.Context, projectID, userID string) error {
	key := memberKey{projectID, userID}
	if _, ok := f.members[key]; !ok {
		return fmt.Errorf("project member: %w", domain.ErrNotFound)
	}
	delete(f.members, key)
	return nil
}

func (f *fakeProjectMemberRepo) RemoveAllForUser(_ context.Context, userID string) error {
	for key := range f.members {
		if key.userID == userID {
			delete(f.members, key)
		}
	}
	return nil
}

func (f *fakeProjectMemberRepo) CountByRole(_ context.Context, projectID, role string) (int64, error) {
	var count int64
	for key, member := range f.members {
		if key.projectID == projectID && member.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentRepo) ListByProject(_ context.Context, projectID string) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range f.docs {
		if doc.ProjectID == projectID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, doc *models.Document) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return fmt.Errorf("document: %w", domain.ErrNotFound)
	}
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("document: %w", domain.ErrNotFound)
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) CountByProject(_ context.Context, projectID string) (int64, error) {
	var count int64
	for _, doc := range f.docs {
		if doc.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

type fakeInvitationRepo struct {
	invitations map[string]*models.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]*models.Invitation)}
}

func (f *fakeInvitationRepo) Create(_ context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	f.invitations[inv.ID] = inv
	return nil
}

func (f *fakeInvitationRepo) GetByID(_ context.Context, id string) (*models.Invitation, error) {
	inv, ok := f.invitations[id]
	if !ok {
		return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvitationRepo) GetByToken(_ context.Context, token string) (*models.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Token == token {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
}

func (f *fakeInvitationRepo) ListByOrg(_ context.Context, orgID string) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range f.invitations {
		if inv.OrgID == orgID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateStatus(_ context.Context, id, status string) error {
	inv, ok := f.invitations[id]
	if !ok {
		return fmt.Errorf("invitation: %w", domain.ErrNotFound)
	}
	if inv.Status != models.InvitationStatusPending {
		return fmt.Errorf("invitation: %w", domain.ErrNotFound)
	}
	inv.Status = status
	return nil
}

type fakeMailer struct {
	sent []string // recipient addresses
}

func (f *fakeMailer) Send(_ context.Context, to, _, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}
