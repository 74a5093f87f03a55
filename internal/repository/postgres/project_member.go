package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// PostgresProjectMemberRepository implements the ProjectMemberRepository interface
type PostgresProjectMemberRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectMemberRepository creates a new project member repository
func NewProjectMemberRepository(config *RepositoryConfig) repositories.ProjectMemberRepository {
	return &PostgresProjectMemberRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Add inserts a membership row
func (r *PostgresProjectMemberRepository) Add(ctx context.Context, member *models.ProjectMember) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id, role, added_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		member.ProjectID,
		member.UserID,
		member.Role,
		member.AddedBy,
	).Scan(&member.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "user is already a member of this project",
				ResourceType: "project_member",
				ResourceID:   member.UserID,
			}
		}
		if IsPgForeignKeyError(err) {
			// The user or project was deleted after the service checked it.
			return fmt.Errorf("add project member: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("add project member: %w", err)
	}

	return nil
}

// Get retrieves a single membership
func (r *PostgresProjectMemberRepository) Get(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	query := fmt.Sprintf(`
		SELECT project_id, user_id, role, added_by, created_at
		FROM %s
		WHERE project_id = $1 AND user_id = $2
	`, r.tables.ProjectMembers)

	var member models.ProjectMember
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, projectID, userID).Scan(
		&member.ProjectID,
		&member.UserID,
		&member.Role,
		&member.AddedBy,
		&member.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project member %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project member: %w", err)
	}

	return &member, nil
}

// ListByProject retrieves all members of a project with user details
func (r *PostgresProjectMemberRepository) ListByProject(ctx context.Context, projectID string) ([]models.ProjectMember, error) {
	query := fmt.Sprintf(`
		SELECT m.project_id, m.user_id, m.role, m.added_by, m.created_at, u.email, u.name
		FROM %s m
		JOIN %s u ON u.id = m.user_id
		WHERE m.project_id = $1 AND u.deleted_at IS NULL
		ORDER BY m.created_at ASC
	`, r.tables.ProjectMembers, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		var member models.ProjectMember
		err := rows.Scan(
			&member.ProjectID,
			&member.UserID,
			&member.Role,
			&member.AddedBy,
			&member.CreatedAt,
			&member.Email,
			&member.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project members: %w", err)
	}

	if members == nil {
		members = []models.ProjectMember{}
	}

	return members, nil
}

// ListByUser retrieves all of a user's memberships as a project ID → role map.
// Memberships on soft-deleted projects are excluded so they never contribute
// permissions.
func (r *PostgresProjectMemberRepository) ListByUser(ctx context.Context, userID string) (map[string]string, error) {
	query := fmt.Sprintf(`
		SELECT m.project_id, m.role
		FROM %s m
		JOIN %s p ON p.id = m.project_id
		WHERE m.user_id = $1 AND p.deleted_at IS NULL
	`, r.tables.ProjectMembers, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make(map[string]string)
	for rows.Next() {
		var projectID, role string
		if err := rows.Scan(&projectID, &role); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships[projectID] = role
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	return memberships, nil
}

// UpdateRole changes a member's project role
func (r *PostgresProjectMemberRepository) UpdateRole(ctx context.Context, projectID, userID, role string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET role = $1
		WHERE project_id = $2 AND user_id = $3
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, role, projectID, userID)
	if err != nil {
		return fmt.Errorf("update project member role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project member %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// Remove deletes a membership row
func (r *PostgresProjectMemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND user_id = $2
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove project member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project member %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// RemoveAllForUser deletes every membership a user holds
func (r *PostgresProjectMemberRepository) RemoveAllForUser(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("remove memberships: %w", err)
	}

	return nil
}

// CountByRole returns how many members of a project hold the given role
func (r *PostgresProjectMemberRepository) CountByRole(ctx context.Context, projectID, role string) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE project_id = $1 AND role = $2
	`, r.tables.ProjectMembers)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("count project members: %w", err)
	}

	return count, nil
}
