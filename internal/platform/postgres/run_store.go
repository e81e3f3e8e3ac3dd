package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/distill-api/internal/runlog"
)

// StoredRun is a run-log record as persisted, with its row id.
type StoredRun struct {
	ID uuid.UUID
	runlog.Record
}

// RunStore persists run-log records in the runs table.
type RunStore struct {
	db     DBTX
	logger *slog.Logger
	now    func() time.Time
}

var _ runlog.Sink = (*RunStore)(nil)

// NewRunStore returns a store backed by db. If logger is nil, the default
// logger is used.
func NewRunStore(db DBTX, logger *slog.Logger) *RunStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RunStore{
		db:     db,
		logger: logger.With(slog.String("component", "run_store")),
		now:    time.Now,
	}
}

// Append implements runlog.Sink. A zero TS is replaced by the current time.
func (s *RunStore) Append(ctx context.Context, rec runlog.Record) error {
	if rec.TS.IsZero() {
		rec.TS = s.now().UTC()
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	var temperature sql.NullFloat64
	if rec.Temperature != nil {
		temperature = sql.NullFloat64{Float64: *rec.Temperature, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, ts, endpoint, model, temperature, input_text, prompt, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, rec.TS, rec.Endpoint, rec.Model, temperature, rec.InputText, rec.Prompt, rec.Raw)
	if err != nil {
		s.logger.Error("failed to insert run",
			slog.String("endpoint", rec.Endpoint),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	s.logger.Debug("run stored",
		slog.String("run_id", id.String()),
		slog.String("endpoint", rec.Endpoint))
	return nil
}

// Recent returns up to limit runs, newest first. An empty endpoint matches
// every run.
func (s *RunStore) Recent(ctx context.Context, endpoint string, limit int) ([]StoredRun, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, endpoint, model, temperature, input_text, prompt, raw
		FROM runs
		WHERE $1 = '' OR endpoint = $1
		ORDER BY ts DESC
		LIMIT $2
	`, endpoint, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var runs []StoredRun
	for rows.Next() {
		var (
			run         StoredRun
			temperature sql.NullFloat64
		)
		if err := rows.Scan(
			&run.ID,
			&run.TS,
			&run.Endpoint,
			&run.Model,
			&temperature,
			&run.InputText,
			&run.Prompt,
			&run.Raw,
		); err != nil {
			return nil, MapError(err)
		}
		if temperature.Valid {
			t := temperature.Float64
			run.Temperature = &t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return runs, nil
}
