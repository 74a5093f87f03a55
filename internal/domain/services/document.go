package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// CreateDocumentRequest represents a request to create a document
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// UpdateDocumentRequest represents a PATCH to a document. Absent fields are
// left unchanged; content may be present-and-empty to clear the body.
type UpdateDocumentRequest struct {
	Title   httputil.OptionalString `json:"title"`
	Slug    httputil.OptionalString `json:"slug"`
	Content httputil.OptionalString `json:"content"`
}

// DocumentService defines business logic operations for documents
type DocumentService interface {
	// Create creates a document in the given project
	Create(ctx context.Context, identity rbac.Identity, projectID string, req *CreateDocumentRequest) (*models.Document, error)

	// Get retrieves a document the caller may view
	Get(ctx context.Context, identity rbac.Identity, documentID string) (*models.Document, error)

	// List retrieves all documents in a project
	List(ctx context.Context, identity rbac.Identity, projectID string) ([]models.Document, error)

	// Update applies PATCH semantics to a document
	Update(ctx context.Context, identity rbac.Identity, documentID string, req *UpdateDocumentRequest) (*models.Document, error)

	// SetPublished flips a document between draft and published
	SetPublished(ctx context.Context, identity rbac.Identity, documentID string, published bool) (*models.Document, error)

	// Delete soft-deletes a document
	Delete(ctx context.Context, identity rbac.Identity, documentID string) error
}
