package repositories

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
)

// InvitationRepository defines data access for invitations
type InvitationRepository interface {
	// Create inserts a new invitation and fills in generated fields
	Create(ctx context.Context, inv *models.Invitation) error

	// GetByID retrieves an invitation by ID
	GetByID(ctx context.Context, id string) (*models.Invitation, error)

	// GetByToken retrieves an invitation by its acceptance token
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)

	// ListByOrg retrieves all invitations for an organization, newest first
	ListByOrg(ctx context.Context, orgID string) ([]models.Invitation, error)

	// UpdateStatus transitions an invitation to accepted or revoked
	UpdateStatus(ctx context.Context, id, status string) error
}

// AuditRepository defines data access for the audit log
type AuditRepository interface {
	// Record inserts an audit event. Call inside the same transaction as
	// the mutation it describes.
	Record(ctx context.Context, event *models.AuditEvent) error

	// ListByOrg retrieves recent audit events for an organization
	ListByOrg(ctx context.Context, orgID string, limit int) ([]models.AuditEvent, error)
}
