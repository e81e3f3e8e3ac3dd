package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/distill-api/internal/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRecorder captures ExecContext calls. Query methods are not used by the
// tests that construct it.
type execRecorder struct {
	query string
	args  []any
	err   error
}

func (e *execRecorder) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.query = query
	e.args = args
	return nil, e.err
}

func (e *execRecorder) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (e *execRecorder) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func TestRunStore_AppendArguments(t *testing.T) {
	rec := &execRecorder{}
	store := NewRunStore(rec, nil)
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	temp := 0.2
	err := store.Append(context.Background(), runlog.Record{
		Endpoint:    "/extract",
		Model:       "llama3.1:8b",
		Temperature: &temp,
		InputText:   "in",
		Prompt:      "p",
		Raw:         "r",
	})
	require.NoError(t, err)

	assert.Contains(t, rec.query, "INSERT INTO runs")
	require.Len(t, rec.args, 8)
	assert.Equal(t, fixed, rec.args[1])
	assert.Equal(t, "/extract", rec.args[2])
	assert.Equal(t, sql.NullFloat64{Float64: 0.2, Valid: true}, rec.args[4])
	assert.Equal(t, "r", rec.args[7])
}

func TestRunStore_AppendNullTemperature(t *testing.T) {
	rec := &execRecorder{}
	store := NewRunStore(rec, nil)

	require.NoError(t, store.Append(context.Background(), runlog.Record{Endpoint: "cli"}))
	assert.Equal(t, sql.NullFloat64{}, rec.args[4])
}

func TestRunStore_AppendMapsErrors(t *testing.T) {
	rec := &execRecorder{err: &pgconn.PgError{Code: notNullViolationCode, ColumnName: "raw"}}
	store := NewRunStore(rec, nil)

	err := store.Append(context.Background(), runlog.Record{})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRunStore_RecentNonPositiveLimit(t *testing.T) {
	store := NewRunStore(&execRecorder{}, nil)

	runs, err := store.Recent(context.Background(), "", 0)
	assert.NoError(t, err)
	assert.Nil(t, runs)
}

func TestNewRunStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewRunStore(nil, nil) })
}
