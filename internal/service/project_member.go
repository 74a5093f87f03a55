package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// projectMemberService implements the ProjectMemberService interface
type projectMemberService struct {
	projectRepo repositories.ProjectRepository
	memberRepo  repositories.ProjectMemberRepository
	userRepo    repositories.UserRepository
	auditRepo   repositories.AuditRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectMemberService creates a new project member service
func NewProjectMemberService(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.ProjectMemberRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectMemberService {
	return &projectMemberService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// loadGuarded loads the project and runs the tenancy and permission checks
// shared by every operation.
func (s *projectMemberService) loadGuarded(ctx context.Context, identity rbac.Identity, projectID string, required rbac.Permission) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, projectID, required); err != nil {
		return nil, err
	}
	return project, nil
}

// List retrieves all members of a project
func (s *projectMemberService) List(ctx context.Context, identity rbac.Identity, projectID string) ([]models.ProjectMember, error) {
	if _, err := s.loadGuarded(ctx, identity, projectID, rbac.PermProjectsView); err != nil {
		return nil, err
	}

	return s.memberRepo.ListByProject(ctx, projectID)
}

// Add grants a user a role in the project. The actor's effective project role
// (membership, or OWNER-equivalent for elevated organization roles) must be
// able to manage the granted role.
func (s *projectMemberService) Add(ctx context.Context, identity rbac.Identity, projectID string, req *services.AddProjectMemberRequest) (*models.ProjectMember, error) {
	project, err := s.loadGuarded(ctx, identity, projectID, rbac.PermProjectsManageMembers)
	if err != nil {
		return nil, err
	}

	newRole, ok := rbac.ParseProjectRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}

	actorRole, ok := effectiveProjectRole(identity, projectID)
	if !ok || !actorRole.CanManage(newRole) {
		return nil, fmt.Errorf("cannot grant role %s: %w", newRole, domain.ErrForbidden)
	}

	// Members must come from the project's organization.
	target, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if target.OrgID == nil || *target.OrgID != project.OrgID {
		return nil, fmt.Errorf("user %s is not a member of this organization: %w", req.UserID, domain.ErrNotFound)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      string(newRole),
		AddedBy:   identity.UserID,
		Email:     target.Email,
		Name:      target.Name,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.memberRepo.Add(txCtx, member); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      project.OrgID,
			ActorID:    identity.UserID,
			Action:     "project_member.added",
			TargetType: "project",
			TargetID:   projectID,
			Detail: map[string]any{
				"user_id": req.UserID,
				"role":    string(newRole),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project member added",
		"project_id", projectID,
		"user_id", req.UserID,
		"role", string(newRole),
		"actor", identity.UserID,
	)

	return member, nil
}

// UpdateRole changes a member's project role. The actor must manage both the
// member's current role and the new one, may not target themselves, and may
// not demote the last OWNER.
func (s *projectMemberService) UpdateRole(ctx context.Context, identity rbac.Identity, projectID, userID string, req *services.UpdateProjectMemberRequest) (*models.ProjectMember, error) {
	project, err := s.loadGuarded(ctx, identity, projectID, rbac.PermProjectsManageMembers)
	if err != nil {
		return nil, err
	}

	newRole, ok := rbac.ParseProjectRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}

	if identity.UserID == userID {
		return nil, domain.ErrSelfModification
	}

	member, err := s.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	currentRole, _ := rbac.ParseProjectRole(member.Role)
	actorRole, ok := effectiveProjectRole(identity, projectID)
	if !ok || !actorRole.CanManage(currentRole) {
		return nil, fmt.Errorf("cannot manage a project %s: %w", member.Role, domain.ErrForbidden)
	}
	if !actorRole.CanManage(newRole) {
		return nil, fmt.Errorf("cannot assign role %s: %w", newRole, domain.ErrForbidden)
	}

	if currentRole == rbac.ProjectRoleOwner && newRole != rbac.ProjectRoleOwner {
		if err := s.requireAnotherOwner(ctx, projectID); err != nil {
			return nil, err
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.memberRepo.UpdateRole(txCtx, projectID, userID, string(newRole)); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      project.OrgID,
			ActorID:    identity.UserID,
			Action:     "project_member.role_updated",
			TargetType: "project",
			TargetID:   projectID,
			Detail: map[string]any{
				"user_id": userID,
				"from":    member.Role,
				"to":      string(newRole),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project member role updated",
		"project_id", projectID,
		"user_id", userID,
		"from", member.Role,
		"to", string(newRole),
		"actor", identity.UserID,
	)

	member.Role = string(newRole)
	return member, nil
}

// Remove drops a member from the project, with the same guards as UpdateRole
// plus last-OWNER protection.
func (s *projectMemberService) Remove(ctx context.Context, identity rbac.Identity, projectID, userID string) error {
	project, err := s.loadGuarded(ctx, identity, projectID, rbac.PermProjectsManageMembers)
	if err != nil {
		return err
	}

	if identity.UserID == userID {
		return domain.ErrSelfModification
	}

	member, err := s.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return err
	}

	currentRole, _ := rbac.ParseProjectRole(member.Role)
	actorRole, ok := effectiveProjectRole(identity, projectID)
	if !ok || !actorRole.CanManage(currentRole) {
		return fmt.Errorf("cannot remove a project %s: %w", member.Role, domain.ErrForbidden)
	}

	if currentRole == rbac.ProjectRoleOwner {
		if err := s.requireAnotherOwner(ctx, projectID); err != nil {
			return err
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.memberRepo.Remove(txCtx, projectID, userID); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      project.OrgID,
			ActorID:    identity.UserID,
			Action:     "project_member.removed",
			TargetType: "project",
			TargetID:   projectID,
			Detail: map[string]any{
				"user_id": userID,
				"role":    member.Role,
			},
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("project member removed",
		"project_id", projectID,
		"user_id", userID,
		"actor", identity.UserID,
	)

	return nil
}

// requireAnotherOwner rejects a mutation that would leave the project with
// zero OWNERs.
func (s *projectMemberService) requireAnotherOwner(ctx context.Context, projectID string) error {
	owners, err := s.memberRepo.CountByRole(ctx, projectID, string(rbac.ProjectRoleOwner))
	if err != nil {
		return err
	}
	if owners <= 1 {
		return domain.ErrLastOwner
	}
	return nil
}
