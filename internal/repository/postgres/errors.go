package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPgUndefinedTableError reports a query against a table that does not exist
func IsPgUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 42P01 = undefined_table
		return pgErr.Code == "42P01"
	}
	return false
}

// IsPgCheckViolation reports a CHECK constraint failure
func IsPgCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23514 = check_violation
		return pgErr.Code == "23514"
	}
	return false
}
