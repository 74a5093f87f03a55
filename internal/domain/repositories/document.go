package repositories

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
)

// DocumentRepository defines data access for documents
type DocumentRepository interface {
	// Create inserts a new document and fills in generated fields
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID, excluding soft-deleted rows
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByProject retrieves all documents in a project, newest first
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)

	// Update persists title, slug, content and status changes
	Update(ctx context.Context, doc *models.Document) error

	// Delete soft-deletes a document
	Delete(ctx context.Context, id string) error

	// CountByProject returns the number of live documents in a project
	CountByProject(ctx context.Context, projectID string) (int64, error)
}
