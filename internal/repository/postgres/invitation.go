package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// PostgresInvitationRepository implements the InvitationRepository interface
type PostgresInvitationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(config *RepositoryConfig) repositories.InvitationRepository {
	return &PostgresInvitationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new invitation
func (r *PostgresInvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (org_id, email, org_role, token, status, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Invitations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		inv.OrgID,
		inv.Email,
		inv.OrgRole,
		inv.Token,
		inv.Status,
		inv.InvitedBy,
		inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("'%s' already has a pending invitation", inv.Email),
				ResourceType: "invitation",
			}
		}
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

// GetByID retrieves an invitation by ID
func (r *PostgresInvitationRepository) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT id, org_id, email, org_role, token, status, invited_by, expires_at, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Invitations)

	return r.scanOne(ctx, query, id)
}

// GetByToken retrieves an invitation by its acceptance token
func (r *PostgresInvitationRepository) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT id, org_id, email, org_role, token, status, invited_by, expires_at, created_at
		FROM %s
		WHERE token = $1
	`, r.tables.Invitations)

	return r.scanOne(ctx, query, token)
}

func (r *PostgresInvitationRepository) scanOne(ctx context.Context, query string, arg any) (*models.Invitation, error) {
	var inv models.Invitation
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&inv.ID,
		&inv.OrgID,
		&inv.Email,
		&inv.OrgRole,
		&inv.Token,
		&inv.Status,
		&inv.InvitedBy,
		&inv.ExpiresAt,
		&inv.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &inv, nil
}

// ListByOrg retrieves all invitations for an organization, newest first
func (r *PostgresInvitationRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT id, org_id, email, org_role, token, status, invited_by, expires_at, created_at
		FROM %s
		WHERE org_id = $1
		ORDER BY created_at DESC
	`, r.tables.Invitations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(
			&inv.ID,
			&inv.OrgID,
			&inv.Email,
			&inv.OrgRole,
			&inv.Token,
			&inv.Status,
			&inv.InvitedBy,
			&inv.ExpiresAt,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invitations: %w", err)
	}

	if invitations == nil {
		invitations = []models.Invitation{}
	}

	return invitations, nil
}

// UpdateStatus transitions an invitation from pending to accepted or revoked.
// The WHERE clause guards the transition so a concurrent accept and revoke
// cannot both succeed.
func (r *PostgresInvitationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1
		WHERE id = $2 AND status = '%s'
	`, r.tables.Invitations, models.InvitationStatusPending)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update invitation status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending invitation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
