package repositories

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
)

// OrganizationRepository defines data access for organizations
type OrganizationRepository interface {
	// Create inserts a new organization and fills in generated fields
	Create(ctx context.Context, org *models.Organization) error

	// GetByID retrieves an organization by ID, excluding soft-deleted rows
	GetByID(ctx context.Context, id string) (*models.Organization, error)

	// List retrieves all organizations (platform super admin view)
	List(ctx context.Context) ([]models.Organization, error)

	// Update persists name, slug and plan changes
	Update(ctx context.Context, org *models.Organization) error

	// Delete soft-deletes an organization
	Delete(ctx context.Context, id string) error
}
