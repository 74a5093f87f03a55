package repositories

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
)

// ProjectRepository defines data access for projects
type ProjectRepository interface {
	// Create inserts a new project and fills in generated fields
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID, excluding soft-deleted rows
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListByOrg retrieves all projects in an organization, newest first
	ListByOrg(ctx context.Context, orgID string) ([]models.Project, error)

	// Update persists name, slug and description changes
	Update(ctx context.Context, project *models.Project) error

	// Delete soft-deletes a project
	Delete(ctx context.Context, id string) error

	// CountByOrg returns the number of live projects in an organization
	CountByOrg(ctx context.Context, orgID string) (int64, error)
}

// ProjectMemberRepository defines data access for project membership rows
type ProjectMemberRepository interface {
	// Add inserts a membership row
	Add(ctx context.Context, member *models.ProjectMember) error

	// Get retrieves a single membership
	Get(ctx context.Context, projectID, userID string) (*models.ProjectMember, error)

	// ListByProject retrieves all members of a project with user details
	ListByProject(ctx context.Context, projectID string) ([]models.ProjectMember, error)

	// ListByUser retrieves all of a user's memberships (project ID → role)
	ListByUser(ctx context.Context, userID string) (map[string]string, error)

	// UpdateRole changes a member's project role
	UpdateRole(ctx context.Context, projectID, userID, role string) error

	// Remove deletes a membership row
	Remove(ctx context.Context, projectID, userID string) error

	// RemoveAllForUser deletes every membership a user holds. Used when a
	// member leaves or is removed from their organization.
	RemoveAllForUser(ctx context.Context, userID string) error

	// CountByRole returns how many members of a project hold the given role
	CountByRole(ctx context.Context, projectID, role string) (int64, error)
}
