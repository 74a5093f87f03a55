package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/config"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/plans"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// organizationService implements the OrganizationService interface
type organizationService struct {
	orgRepo     repositories.OrganizationRepository
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	auditRepo   repositories.AuditRepository
	txManager   repositories.TransactionManager
	plans       *plans.Registry
	logger      *slog.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo repositories.OrganizationRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	planRegistry *plans.Registry,
	logger *slog.Logger,
) services.OrganizationService {
	return &organizationService{
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		plans:       planRegistry,
		logger:      logger,
	}
}

// Create is the onboarding entry point. No permission is required beyond
// authentication: the caller must simply not belong to an organization yet.
// The organization and the creator's ORG_ADMIN mirror record commit in one
// transaction.
func (s *organizationService) Create(ctx context.Context, actor services.Actor, req *services.CreateOrganizationRequest) (*models.Organization, error) {
	if !actor.Identity.Authenticated() {
		return nil, domain.AccessDenied(rbac.Decision{Reason: rbac.DenyUnauthenticated})
	}
	if actor.Identity.OrgID != "" {
		return nil, &domain.ConflictError{
			Message:      "you already belong to an organization",
			ResourceType: "organization",
			ResourceID:   actor.Identity.OrgID,
		}
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	org := &models.Organization{
		Name: strings.TrimSpace(req.Name),
		Slug: slug,
		Plan: plans.DefaultPlan,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.orgRepo.Create(txCtx, org); err != nil {
			return err
		}

		// Mirror the creator lazily: first sign-ins have no row yet,
		// returning users (e.g. removed from a previous organization)
		// already do.
		_, err := s.userRepo.GetByID(txCtx, actor.Identity.UserID)
		switch {
		case err == nil:
			if err := s.userRepo.AttachToOrg(txCtx, actor.Identity.UserID, org.ID, string(rbac.OrgRoleAdmin)); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			user := &models.User{
				ID:      actor.Identity.UserID,
				Email:   actor.Email,
				Name:    actor.Name,
				OrgID:   &org.ID,
				OrgRole: string(rbac.OrgRoleAdmin),
			}
			if err := s.userRepo.Create(txCtx, user); err != nil {
				return err
			}
		default:
			return err
		}

		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      org.ID,
			ActorID:    actor.Identity.UserID,
			Action:     "organization.created",
			TargetType: "organization",
			TargetID:   org.ID,
			Detail:     map[string]any{"creator_role": string(rbac.OrgRoleAdmin)},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organization created",
		"id", org.ID,
		"slug", org.Slug,
		"creator", actor.Identity.UserID,
	)

	return org, nil
}

// Get retrieves an organization the caller may view
func (s *organizationService) Get(ctx context.Context, identity rbac.Identity, orgID string) (*models.Organization, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermOrganizationView); err != nil {
		return nil, err
	}

	return s.orgRepo.GetByID(ctx, orgID)
}

// List returns every organization for platform super admins and the caller's
// own organization for everyone else.
func (s *organizationService) List(ctx context.Context, identity rbac.Identity) ([]models.Organization, error) {
	if err := authorize(identity, "", rbac.PermOrganizationView); err != nil {
		return nil, err
	}

	if identity.OrgRole == rbac.OrgRoleSuperAdmin {
		return s.orgRepo.List(ctx)
	}

	org, err := s.orgRepo.GetByID(ctx, identity.OrgID)
	if err != nil {
		return nil, err
	}
	return []models.Organization{*org}, nil
}

// Update changes an organization's name and slug
func (s *organizationService) Update(ctx context.Context, identity rbac.Identity, orgID string, req *services.UpdateOrganizationRequest) (*models.Organization, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermOrganizationManage); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	org.Name = strings.TrimSpace(req.Name)
	if req.Slug != "" {
		org.Slug = req.Slug
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization updated", "id", org.ID, "actor", identity.UserID)

	return org, nil
}

// Delete soft-deletes an organization. The required permission is held only
// by platform super admins.
func (s *organizationService) Delete(ctx context.Context, identity rbac.Identity, orgID string) error {
	if err := requireSameOrg(identity, orgID); err != nil {
		return err
	}
	if err := authorize(identity, "", rbac.PermOrganizationDelete); err != nil {
		return err
	}

	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(ctx, orgID); err != nil {
		return err
	}

	s.logger.Info("organization deleted", "id", orgID, "actor", identity.UserID)

	return nil
}

// Billing returns the organization's plan limits and live usage counts.
// Billing computation proper (payments, proration) lives outside this
// service; the plan catalog is static.
func (s *organizationService) Billing(ctx context.Context, identity rbac.Identity, orgID string) (*services.Billing, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermOrganizationBilling); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.CountByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &services.Billing{
		Plan:     *s.plans.Get(org.Plan),
		Members:  members,
		Projects: projects,
	}, nil
}

// AuditLog returns recent role and membership mutations
func (s *organizationService) AuditLog(ctx context.Context, identity rbac.Identity, orgID string, limit int) ([]models.AuditEvent, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermOrganizationManage); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	return s.auditRepo.ListByOrg(ctx, orgID, limit)
}

func (s *organizationService) validateCreateRequest(req *services.CreateOrganizationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxOrganizationNameLength),
			validation.By(validateName),
		),
		validation.Field(&req.Slug,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Slug != "", validation.By(validateSlug)),
		),
	)
}

func (s *organizationService) validateUpdateRequest(req *services.UpdateOrganizationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxOrganizationNameLength),
			validation.By(validateName),
		),
		validation.Field(&req.Slug,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Slug != "", validation.By(validateSlug)),
		),
	)
}
