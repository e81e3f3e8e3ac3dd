package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "unique", err: &pgconn.PgError{Code: uniqueViolationCode}, want: ErrDuplicate},
		{name: "check", err: &pgconn.PgError{Code: checkViolationCode, ConstraintName: "c"}, want: ErrInvalidRecord},
		{name: "not null", err: &pgconn.PgError{Code: notNullViolationCode, ColumnName: "raw"}, want: ErrInvalidRecord},
		{name: "other", err: plain, want: plain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapError_KeepsColumnName(t *testing.T) {
	t.Parallel()

	err := MapError(&pgconn.PgError{Code: notNullViolationCode, ColumnName: "prompt"})
	assert.Contains(t, err.Error(), "not null violation (prompt)")

	var pgErr *pgconn.PgError
	assert.False(t, errors.As(err, &pgErr))
}
