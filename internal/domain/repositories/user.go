package repositories

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
)

// UserRepository defines data access for identity mirror records
type UserRepository interface {
	// Create inserts a new mirror record
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by the identity provider's subject
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ListByOrg retrieves all users belonging to an organization
	ListByOrg(ctx context.Context, orgID string) ([]models.User, error)

	// UpdateRole changes a user's organization role
	UpdateRole(ctx context.Context, id, orgRole string) error

	// AttachToOrg sets a user's organization and role (invite acceptance,
	// organization creation)
	AttachToOrg(ctx context.Context, id, orgID, orgRole string) error

	// RemoveFromOrg clears a user's organization and resets the role
	RemoveFromOrg(ctx context.Context, id string) error

	// CountByOrg returns the number of users in an organization
	CountByOrg(ctx context.Context, orgID string) (int64, error)
}
