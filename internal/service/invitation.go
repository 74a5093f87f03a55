package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/config"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/mail"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/plans"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// invitationService implements the InvitationService interface
type invitationService struct {
	invRepo    repositories.InvitationRepository
	userRepo   repositories.UserRepository
	orgRepo    repositories.OrganizationRepository
	auditRepo  repositories.AuditRepository
	txManager  repositories.TransactionManager
	mailer     mail.Mailer
	plans      *plans.Registry
	appBaseURL string
	logger     *slog.Logger
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	invRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	orgRepo repositories.OrganizationRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	mailer mail.Mailer,
	planRegistry *plans.Registry,
	appBaseURL string,
	logger *slog.Logger,
) services.InvitationService {
	return &invitationService{
		invRepo:    invRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		mailer:     mailer,
		plans:      planRegistry,
		appBaseURL: appBaseURL,
		logger:     logger,
	}
}

// Create issues an invitation. The actor must be able to manage the invited
// role (a MANAGER can invite a USER but not another MANAGER), and the
// organization must have member seats left on its plan.
func (s *invitationService) Create(ctx context.Context, identity rbac.Identity, orgID string, req *services.CreateInvitationRequest) (*models.Invitation, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermUsersInvite); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	invitedRole, ok := rbac.ParseOrgRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}
	if invitedRole == rbac.OrgRoleSuperAdmin {
		return nil, fmt.Errorf("%w: SUPER_ADMIN cannot be invited", domain.ErrValidation)
	}
	if !identity.OrgRole.CanManage(invitedRole) {
		return nil, fmt.Errorf("cannot invite a %s: %w", invitedRole, domain.ErrForbidden)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Seat check against the plan before creating the row.
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	memberCount, err := s.userRepo.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	plan := s.plans.Get(org.Plan)
	if !plan.AllowsMember(memberCount) {
		return nil, &domain.QuotaExceededError{
			Resource: "members",
			Current:  memberCount,
			Limit:    plan.MaxMembers,
		}
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		if existing.OrgID != nil && *existing.OrgID == orgID {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("'%s' is already a member of this organization", email),
				ResourceType: "user",
				ResourceID:   existing.ID,
			}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	inv := &models.Invitation{
		OrgID:     orgID,
		Email:     email,
		OrgRole:   string(invitedRole),
		Token:     uuid.NewString(),
		Status:    models.InvitationStatusPending,
		InvitedBy: identity.UserID,
		ExpiresAt: time.Now().Add(config.InvitationTTL),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.invRepo.Create(txCtx, inv); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      orgID,
			ActorID:    identity.UserID,
			Action:     "invitation.created",
			TargetType: "invitation",
			TargetID:   inv.ID,
			Detail: map[string]any{
				"email": email,
				"role":  string(invitedRole),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	// Delivery failure does not roll back the invitation; the link can be
	// resent or read from the admin UI.
	if err := s.sendInviteMail(ctx, org, inv); err != nil {
		s.logger.Error("invitation mail failed",
			"invitation_id", inv.ID,
			"error", err,
		)
	}

	s.logger.Info("invitation created",
		"org_id", orgID,
		"invitation_id", inv.ID,
		"role", inv.OrgRole,
		"actor", identity.UserID,
	)

	return inv, nil
}

// List retrieves all invitations for an organization
func (s *invitationService) List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.Invitation, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermUsersView); err != nil {
		return nil, err
	}

	return s.invRepo.ListByOrg(ctx, orgID)
}

// Revoke withdraws a pending invitation
func (s *invitationService) Revoke(ctx context.Context, identity rbac.Identity, orgID, invitationID string) error {
	if err := requireSameOrg(identity, orgID); err != nil {
		return err
	}
	if err := authorize(identity, "", rbac.PermUsersInvite); err != nil {
		return err
	}

	inv, err := s.invRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.OrgID != orgID {
		return fmt.Errorf("invitation: %w", domain.ErrNotFound)
	}

	invitedRole, _ := rbac.ParseOrgRole(inv.OrgRole)
	if !identity.OrgRole.CanManage(invitedRole) {
		return fmt.Errorf("cannot revoke an invitation for a %s: %w", inv.OrgRole, domain.ErrForbidden)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.invRepo.UpdateStatus(txCtx, invitationID, models.InvitationStatusRevoked); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      orgID,
			ActorID:    identity.UserID,
			Action:     "invitation.revoked",
			TargetType: "invitation",
			TargetID:   invitationID,
			Detail:     map[string]any{"email": inv.Email},
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("invitation revoked",
		"org_id", orgID,
		"invitation_id", invitationID,
		"actor", identity.UserID,
	)

	return nil
}

// Accept redeems an invitation token for the authenticated caller. The
// invited role is applied exactly as stored, so acceptance can never escalate
// beyond what the inviter granted.
func (s *invitationService) Accept(ctx context.Context, actor services.Actor, token string) (*models.User, error) {
	if !actor.Identity.Authenticated() {
		return nil, domain.AccessDenied(rbac.Decision{Reason: rbac.DenyUnauthenticated})
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrValidation)
	}
	if actor.Identity.OrgID != "" {
		return nil, &domain.ConflictError{
			Message:      "you already belong to an organization",
			ResourceType: "organization",
			ResourceID:   actor.Identity.OrgID,
		}
	}

	inv, err := s.invRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, domain.ErrInviteExpired
	}
	if !strings.EqualFold(inv.Email, actor.Email) {
		return nil, fmt.Errorf("invitation was issued to a different address: %w", domain.ErrForbidden)
	}

	var user *models.User
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.invRepo.UpdateStatus(txCtx, inv.ID, models.InvitationStatusAccepted); err != nil {
			return err
		}

		existing, err := s.userRepo.GetByID(txCtx, actor.Identity.UserID)
		switch {
		case err == nil:
			if err := s.userRepo.AttachToOrg(txCtx, actor.Identity.UserID, inv.OrgID, inv.OrgRole); err != nil {
				return err
			}
			existing.OrgID = &inv.OrgID
			existing.OrgRole = inv.OrgRole
			user = existing
		case errors.Is(err, domain.ErrNotFound):
			user = &models.User{
				ID:      actor.Identity.UserID,
				Email:   strings.ToLower(actor.Email),
				Name:    actor.Name,
				OrgID:   &inv.OrgID,
				OrgRole: inv.OrgRole,
			}
			if err := s.userRepo.Create(txCtx, user); err != nil {
				return err
			}
		default:
			return err
		}

		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      inv.OrgID,
			ActorID:    actor.Identity.UserID,
			Action:     "invitation.accepted",
			TargetType: "user",
			TargetID:   actor.Identity.UserID,
			Detail:     map[string]any{"role": inv.OrgRole},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invitation accepted",
		"org_id", inv.OrgID,
		"user_id", user.ID,
		"role", inv.OrgRole,
	)

	return user, nil
}

func (s *invitationService) sendInviteMail(ctx context.Context, org *models.Organization, inv *models.Invitation) error {
	link := fmt.Sprintf("%s/invitations/accept?token=%s", strings.TrimSuffix(s.appBaseURL, "/"), inv.Token)
	subject := fmt.Sprintf("You've been invited to %s", org.Name)
	text := fmt.Sprintf(
		"You have been invited to join %s as %s.\n\nAccept the invitation here: %s\n\nThe invitation expires on %s.",
		org.Name, inv.OrgRole, link, inv.ExpiresAt.Format("2 Jan 2006"),
	)
	html := fmt.Sprintf(
		"<p>You have been invited to join <strong>%s</strong> as %s.</p><p><a href=%q>Accept the invitation</a></p><p>The invitation expires on %s.</p>",
		org.Name, inv.OrgRole, link, inv.ExpiresAt.Format("2 Jan 2006"),
	)
	return s.mailer.Send(ctx, inv.Email, subject, html, text)
}

func (s *invitationService) validateCreateRequest(req *services.CreateInvitationRequest) error {
	return validation.ValidateStruct(req,
		// EmailFormat is a pure syntax check; validation must not depend
		// on DNS being able to resolve the invited domain.
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Role, validation.Required),
	)
}
