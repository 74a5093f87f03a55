package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames is the single source of truth for table names used in queries.
// SQL strings are built with fmt.Sprintf from these values, which is safe:
// the names are compile-time constants interpolated before the statement is
// sent to the database, never user input.
type TableNames struct {
	Organizations  string
	Users          string
	Projects       string
	ProjectMembers string
	Documents      string
	Invitations    string
	AuditEvents    string
}

// NewTableNames creates the table name set matching the migrations.
func NewTableNames() *TableNames {
	return &TableNames{
		Organizations:  "organizations",
		Users:          "users",
		Projects:       "projects",
		ProjectMembers: "project_members",
		Documents:      "documents",
		Invitations:    "invitations",
		AuditEvents:    "audit_events",
	}
}

// CreateConnectionPool creates a new pgx connection pool and verifies the
// connection with a ping.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
