package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var ErrMissingReference = errors.New("referenced record does not exist")

// pgCode extracts the SQLSTATE from either driver's error type.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func mapPgError(err error) error {
	if pgCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	}
	return err
}
