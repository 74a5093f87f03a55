package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes this layer cares about. Everything else is passed
// through wrapped.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError reports whether err is a unique constraint violation.
// Repositories map these to ConflictError on slug and membership inserts.
func IsPgDuplicateError(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// IsPgNoRowsError reports whether a single-row query found nothing.
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError reports whether err is a foreign key violation, i.e.
// the referenced row disappeared between the service-layer check and the
// insert.
func IsPgForeignKeyError(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}
