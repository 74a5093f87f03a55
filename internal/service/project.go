package service

import (
	"context"
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

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	memberRepo  repositories.ProjectMemberRepository
	orgRepo     repositories.OrganizationRepository
	auditRepo   repositories.AuditRepository
	txManager   repositories.TransactionManager
	plans       *plans.Registry
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.ProjectMemberRepository,
	orgRepo repositories.OrganizationRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	planRegistry *plans.Registry,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		orgRepo:     orgRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		plans:       planRegistry,
		logger:      logger,
	}
}

// Create creates a project in the caller's organization. The creator becomes
// the project's first OWNER in the same transaction, so a project never
// exists without one.
func (s *projectService) Create(ctx context.Context, identity rbac.Identity, req *services.CreateProjectRequest) (*models.Project, error) {
	if identity.OrgID == "" {
		return nil, domain.AccessDenied(rbac.Decision{Reason: rbac.DenyNotOrganizationMember})
	}
	if err := authorize(identity, "", rbac.PermProjectsCreate); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	org, err := s.orgRepo.GetByID(ctx, identity.OrgID)
	if err != nil {
		return nil, err
	}
	count, err := s.projectRepo.CountByOrg(ctx, identity.OrgID)
	if err != nil {
		return nil, err
	}
	plan := s.plans.Get(org.Plan)
	if !plan.AllowsProject(count) {
		return nil, &domain.QuotaExceededError{
			Resource: "projects",
			Current:  count,
			Limit:    plan.MaxProjects,
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	project := &models.Project{
		OrgID:       identity.OrgID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   identity.UserID,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.Create(txCtx, project); err != nil {
			return err
		}
		if err := s.memberRepo.Add(txCtx, &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    identity.UserID,
			Role:      string(rbac.ProjectRoleOwner),
			AddedBy:   identity.UserID,
		}); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEvent{
			OrgID:      identity.OrgID,
			ActorID:    identity.UserID,
			Action:     "project_member.added",
			TargetType: "project",
			TargetID:   project.ID,
			Detail: map[string]any{
				"user_id": identity.UserID,
				"role":    string(rbac.ProjectRoleOwner),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"org_id", project.OrgID,
		"slug", project.Slug,
		"actor", identity.UserID,
	)

	return project, nil
}

// Get retrieves a project the caller may view
func (s *projectService) Get(ctx context.Context, identity rbac.Identity, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, projectID, rbac.PermProjectsView); err != nil {
		return nil, err
	}

	return project, nil
}

// List retrieves all projects in an organization
func (s *projectService) List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.Project, error) {
	if err := requireSameOrg(identity, orgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, "", rbac.PermProjectsView); err != nil {
		return nil, err
	}

	return s.projectRepo.ListByOrg(ctx, orgID)
}

// Update changes a project's name, slug and description
func (s *projectService) Update(ctx context.Context, identity rbac.Identity, projectID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, projectID, rbac.PermProjectsEdit); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project.Name = strings.TrimSpace(req.Name)
	if req.Slug != "" {
		project.Slug = req.Slug
	}
	project.Description = strings.TrimSpace(req.Description)

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "actor", identity.UserID)

	return project, nil
}

// Delete soft-deletes a project
func (s *projectService) Delete(ctx context.Context, identity rbac.Identity, projectID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return err
	}
	if err := authorize(identity, projectID, rbac.PermProjectsDelete); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", projectID, "actor", identity.UserID)

	return nil
}

func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(validateName),
		),
		validation.Field(&req.Slug,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Slug != "", validation.By(validateSlug)),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}

func (s *projectService) validateUpdateRequest(req *services.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
			validation.By(validateName),
		),
		validation.Field(&req.Slug,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Slug != "", validation.By(validateSlug)),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}
