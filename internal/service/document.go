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

// documentService implements the DocumentService interface
type documentService struct {
	docRepo     repositories.DocumentRepository
	projectRepo repositories.ProjectRepository
	orgRepo     repositories.OrganizationRepository
	plans       *plans.Registry
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	orgRepo repositories.OrganizationRepository,
	planRegistry *plans.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
		plans:       planRegistry,
		logger:      logger,
	}
}

// guardProject loads the project and runs the tenancy and permission checks
// for an operation scoped to it.
func (s *documentService) guardProject(ctx context.Context, identity rbac.Identity, projectID string, required rbac.Permission) (*models.Project, error) {
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

// guardDocument loads a document and guards it through its project.
func (s *documentService) guardDocument(ctx context.Context, identity rbac.Identity, documentID string, required rbac.Permission) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guardProject(ctx, identity, doc.ProjectID, required); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create creates a document in the given project
func (s *documentService) Create(ctx context.Context, identity rbac.Identity, projectID string, req *services.CreateDocumentRequest) (*models.Document, error) {
	project, err := s.guardProject(ctx, identity, projectID, rbac.PermDocumentsCreate)
	if err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	org, err := s.orgRepo.GetByID(ctx, project.OrgID)
	if err != nil {
		return nil, err
	}
	count, err := s.docRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	plan := s.plans.Get(org.Plan)
	if !plan.AllowsDocument(count) {
		return nil, &domain.QuotaExceededError{
			Resource: "documents",
			Current:  count,
			Limit:    plan.MaxDocumentsPerProject,
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}

	doc := &models.Document{
		ProjectID: projectID,
		Title:     strings.TrimSpace(req.Title),
		Slug:      slug,
		Content:   req.Content,
		Status:    models.DocumentStatusDraft,
		CreatedBy: identity.UserID,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"project_id", projectID,
		"slug", doc.Slug,
		"actor", identity.UserID,
	)

	return doc, nil
}

// Get retrieves a document the caller may view
func (s *documentService) Get(ctx context.Context, identity rbac.Identity, documentID string) (*models.Document, error) {
	return s.guardDocument(ctx, identity, documentID, rbac.PermDocumentsView)
}

// List retrieves all documents in a project
func (s *documentService) List(ctx context.Context, identity rbac.Identity, projectID string) ([]models.Document, error) {
	if _, err := s.guardProject(ctx, identity, projectID, rbac.PermDocumentsView); err != nil {
		return nil, err
	}

	return s.docRepo.ListByProject(ctx, projectID)
}

// Update applies PATCH semantics: absent fields keep their stored value and a
// present-and-empty content clears the body.
func (s *documentService) Update(ctx context.Context, identity rbac.Identity, documentID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.guardDocument(ctx, identity, documentID, rbac.PermDocumentsEdit)
	if err != nil {
		return nil, err
	}

	if req.Title.Present {
		if req.Title.Value == nil {
			return nil, fmt.Errorf("%w: title cannot be null", domain.ErrValidation)
		}
		title := strings.TrimSpace(*req.Title.Value)
		if err := validation.Validate(title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
			validation.By(validateName),
		); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
		doc.Title = title
	}

	if req.Slug.Present {
		if req.Slug.Value == nil {
			return nil, fmt.Errorf("%w: slug cannot be null", domain.ErrValidation)
		}
		if err := validation.Validate(*req.Slug.Value,
			validation.Required,
			validation.Length(1, config.MaxSlugLength),
			validation.By(validateSlug),
		); err != nil {
			return nil, fmt.Errorf("%w: slug: %v", domain.ErrValidation, err)
		}
		doc.Slug = *req.Slug.Value
	}

	if req.Content.Present {
		if req.Content.Value == nil {
			doc.Content = ""
		} else {
			doc.Content = *req.Content.Value
		}
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"project_id", doc.ProjectID,
		"actor", identity.UserID,
	)

	return doc, nil
}

// SetPublished flips a document between draft and published. Publishing is a
// status change on the same row, not a copy.
func (s *documentService) SetPublished(ctx context.Context, identity rbac.Identity, documentID string, published bool) (*models.Document, error) {
	doc, err := s.guardDocument(ctx, identity, documentID, rbac.PermDocumentsPublish)
	if err != nil {
		return nil, err
	}

	status := models.DocumentStatusDraft
	if published {
		status = models.DocumentStatusPublished
	}
	if doc.Status == status {
		return doc, nil
	}
	doc.Status = status

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document status changed",
		"id", doc.ID,
		"project_id", doc.ProjectID,
		"status", doc.Status,
		"actor", identity.UserID,
	)

	return doc, nil
}

// Delete soft-deletes a document
func (s *documentService) Delete(ctx context.Context, identity rbac.Identity, documentID string) error {
	doc, err := s.guardDocument(ctx, identity, documentID, rbac.PermDocumentsDelete)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", doc.ID,
		"project_id", doc.ProjectID,
		"actor", identity.UserID,
	)

	return nil
}

func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
			validation.By(validateName),
		),
		validation.Field(&req.Slug,
			validation.Length(0, config.MaxSlugLength),
			validation.When(req.Slug != "", validation.By(validateSlug)),
		),
	)
}
