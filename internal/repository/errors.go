package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrUniqueViolation       = "23505"
	PgErrForeignKeyViolation   = "23503"
	PgErrCheckViolation        = "23514"
	PgErrSerializationFailure  = "40001"
	PgErrInvalidTextRepresent  = "22P02"
	PgErrInvalidDatetimeFormat = "22007"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
