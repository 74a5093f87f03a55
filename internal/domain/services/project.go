package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// Create creates a project in the caller's organization and makes the
	// creator its first OWNER in one transaction
	Create(ctx context.Context, identity rbac.Identity, req *CreateProjectRequest) (*models.Project, error)

	// Get retrieves a project the caller may view
	Get(ctx context.Context, identity rbac.Identity, projectID string) (*models.Project, error)

	// List retrieves all projects in an organization
	List(ctx context.Context, identity rbac.Identity, orgID string) ([]models.Project, error)

	// Update changes a project's name, slug and description
	Update(ctx context.Context, identity rbac.Identity, projectID string, req *UpdateProjectRequest) (*models.Project, error)

	// Delete soft-deletes a project
	Delete(ctx context.Context, identity rbac.Identity, projectID string) error
}

// AddProjectMemberRequest represents a request to add a project member
type AddProjectMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UpdateProjectMemberRequest represents a request to change a member's
// project role
type UpdateProjectMemberRequest struct {
	Role string `json:"role"`
}

// ProjectMemberService defines business logic operations for project
// membership. Elevated organization roles act with OWNER-equivalent reach on
// every project without holding a membership row.
type ProjectMemberService interface {
	// List retrieves all members of a project
	List(ctx context.Context, identity rbac.Identity, projectID string) ([]models.ProjectMember, error)

	// Add grants a user of the same organization a role in the project
	Add(ctx context.Context, identity rbac.Identity, projectID string, req *AddProjectMemberRequest) (*models.ProjectMember, error)

	// UpdateRole changes a member's project role. Demoting the last OWNER
	// is rejected, as is targeting yourself.
	UpdateRole(ctx context.Context, identity rbac.Identity, projectID, userID string, req *UpdateProjectMemberRequest) (*models.ProjectMember, error)

	// Remove drops a member from the project. Removing the last OWNER or
	// yourself is rejected.
	Remove(ctx context.Context, identity rbac.Identity, projectID, userID string) error
}
