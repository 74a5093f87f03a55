package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// PostgresOrganizationRepository implements the OrganizationRepository interface
type PostgresOrganizationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(config *RepositoryConfig) repositories.OrganizationRepository {
	return &PostgresOrganizationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new organization
func (r *PostgresOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, plan)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		org.Name,
		org.Slug,
		org.Plan,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("organization slug '%s' already exists", org.Slug),
				ResourceType: "organization",
			}
		}
		return fmt.Errorf("create organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *PostgresOrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, plan, created_at, updated_at
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Organizations)

	var org models.Organization
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.Plan,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("organization %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	return &org, nil
}

// List retrieves all organizations, newest first
func (r *PostgresOrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, plan, created_at, updated_at
		FROM %s
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var org models.Organization
		err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.Slug,
			&org.Plan,
			&org.CreatedAt,
			&org.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizations: %w", err)
	}

	if orgs == nil {
		orgs = []models.Organization{}
	}

	return orgs, nil
}

// Update persists name, slug and plan changes
func (r *PostgresOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, plan = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		org.Name,
		org.Slug,
		org.Plan,
		org.ID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("organization slug '%s' already exists", org.Slug),
				ResourceType: "organization",
			}
		}
		return fmt.Errorf("update organization: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", org.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes an organization
func (r *PostgresOrganizationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
