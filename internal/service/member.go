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

// memberService implements the MemberService interface
type memberService struct {
	userRepo   repositories.UserRepository
	memberRepo repositories.ProjectMemberRepository
	auditRepo  repositories.AuditRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	userRepo repositories.UserRepository,
	memberRepo repositories.ProjectMemberRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.MemberService {
	return &memberService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// List retrieves all members of an organization
func (s *memberService) List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.User, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermUsersView); err != nil {
		return nil, err
	}

	return s.userRepo.ListByOrg(ctx, orgID)
}

// UpdateRole changes a member's organization role.
//
// Ordering matters here: the permission check runs first, then the
// self-modification guard, then both hierarchy comparisons. The actor must
// outrank the member's current role AND the new one; otherwise a MANAGER
// could promote a USER to ORG_ADMIN or demote an ORG_ADMIN to USER.
// SUPER_ADMIN is never assignable through the API.
func (s *memberService) UpdateRole(ctx context.Context, identity rbac.Identity, orgID, userID string, req *services.UpdateMemberRoleRequest) (*models.User, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermUsersManage); err != nil {
		return nil, err
	}

	newRole, ok := rbac.ParseOrgRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}
	if newRole == rbac.OrgRoleSuperAdmin {
		return nil, fmt.Errorf("%w: SUPER_ADMIN cannot be assigned", domain.ErrValidation)
	}

	if identity.UserID == userID {
		return nil, domain.ErrSelfModification
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.OrgID == nil || *target.OrgID != orgID {
		return nil, fmt.Errorf("user %s is not a member of this organization: %w", userID, domain.ErrNotFound)
	}

	currentRole, _ := rbac.ParseOrgRole(target.OrgRole)
	if !identity.OrgRole.CanManage(currentRole) {
		return nil, fmt.Errorf("cannot manage a %s: %w", target.OrgRole, domain.ErrForbidden)
	}
	if !identity.OrgRole.CanManage(newRole) {
		return nil, fmt.Errorf("cannot assign role %s: %w", newRole, domain.ErrForbidden)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.UpdateRole(txCtx, userID, string(newRole)); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      orgID,
			ActorID:    identity.UserID,
			Action:     "member.role_updated",
			TargetType: "user",
			TargetID:   userID,
			Detail: map[string]any{
				"from": target.OrgRole,
				"to":   string(newRole),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member role updated",
		"org_id", orgID,
		"user_id", userID,
		"from", target.OrgRole,
		"to", string(newRole),
		"actor", identity.UserID,
	)

	target.OrgRole = string(newRole)
	return target, nil
}

// Remove detaches a member from the organization and drops every project
// membership they held, so no stale membership row keeps granting
// project-scoped permissions.
func (s *memberService) Remove(ctx context.Context, identity rbac.Identity, orgID, userID string) error {
	if err := requireSameOrg(identity, orgID); err != nil {
		return err
	}
	if err := authorize(identity, "", rbac.PermUsersRemove); err != nil {
		return err
	}

	if identity.UserID == userID {
		return domain.ErrSelfModification
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.OrgID == nil || *target.OrgID != orgID {
		return fmt.Errorf("user %s is not a member of this organization: %w", userID, domain.ErrNotFound)
	}

	currentRole, _ := rbac.ParseOrgRole(target.OrgRole)
	if !identity.OrgRole.CanManage(currentRole) {
		return fmt.Errorf("cannot remove a %s: %w", target.OrgRole, domain.ErrForbidden)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.memberRepo.RemoveAllForUser(txCtx, userID); err != nil {
			return err
		}
		if err := s.userRepo.RemoveFromOrg(txCtx, userID); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      orgID,
			ActorID:    identity.UserID,
			Action:     "member.removed",
			TargetType: "user",
			TargetID:   userID,
			Detail:     map[string]any{"role": target.OrgRole},
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("member removed",
		"org_id", orgID,
		"user_id", userID,
		"actor", identity.UserID,
	)

	return nil
}
