package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514"
	notNullViolationCode = "23502"
)

// Error definitions for the postgres package.
var (
	// ErrDuplicate is returned when a row with the same id already exists.
	ErrDuplicate = errors.New("duplicate run id")

	// ErrInvalidRecord is returned when a row violates a table constraint.
	ErrInvalidRecord = errors.New("invalid run record")
)

// MapError maps a database error to a package error, keeping the original
// error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				ErrInvalidRecord,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				ErrInvalidRecord,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}
