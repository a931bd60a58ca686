package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que traducimos a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func constraintViolation(err error, code string) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return "", false
	}
	return pgErr.ConstraintName, true
}

func isUniqueViolation(err error, constraint string) bool {
	name, ok := constraintViolation(err, codeUniqueViolation)
	return ok && name == constraint
}

func isForeignKeyViolation(err error, constraint string) bool {
	name, ok := constraintViolation(err, codeForeignKeyViolation)
	return ok && name == constraint
}
