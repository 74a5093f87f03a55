package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// PostgresAuditRepository implements the AuditRepository interface
type PostgresAuditRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(config *RepositoryConfig) repositories.AuditRepository {
	return &PostgresAuditRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Record inserts an audit event. When called inside a transaction context the
// event commits or rolls back together with the mutation it describes.
func (r *PostgresAuditRepository) Record(ctx context.Context, event *models.AuditEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (org_id, actor_id, action, target_type, target_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.AuditEvents)

	detail := event.Detail
	if detail == nil {
		detail = map[string]any{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		event.OrgID,
		event.ActorID,
		event.Action,
		event.TargetType,
		event.TargetID,
		detail,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	return nil
}

// ListByOrg retrieves recent audit events for an organization, newest first
func (r *PostgresAuditRepository) ListByOrg(ctx context.Context, orgID string, limit int) ([]models.AuditEvent, error) {
	query := fmt.Sprintf(`
		SELECT id, org_id, actor_id, action, target_type, target_id, detail, created_at
		FROM %s
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.AuditEvents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var event models.AuditEvent
		err := rows.Scan(
			&event.ID,
			&event.OrgID,
			&event.ActorID,
			&event.Action,
			&event.TargetType,
			&event.TargetID,
			&event.Detail,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	if events == nil {
		events = []models.AuditEvent{}
	}

	return events, nil
}
