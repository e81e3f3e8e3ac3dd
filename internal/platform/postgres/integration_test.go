package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/distill-api/internal/ciutil"
	"github.com/phrazzld/distill-api/internal/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_PostgresRoundTrip(t *testing.T) {
	dsn := ciutil.TestDatabaseURL(nil)
	if dsn == "" {
		t.Skipf("%s not set", ciutil.EnvTestDatabaseURL)
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn, nil)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, nil))
	// Running twice must be a no-op.
	require.NoError(t, Migrate(ctx, db, nil))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	store := NewRunStore(tx, nil)
	endpoint := fmt.Sprintf("/test-%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
	temp := 0.9
	older := time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond)

	require.NoError(t, store.Append(ctx, runlog.Record{
		TS:          older,
		Endpoint:    endpoint,
		Model:       "llama3.1:8b",
		Temperature: &temp,
		InputText:   "meeting notes",
		Prompt:      "prompt one",
		Raw:         `{"summary":"a","key_points":[]}`,
	}))
	require.NoError(t, store.Append(ctx, runlog.Record{
		Endpoint: endpoint,
		Model:    "llama3.1:8b",
		Prompt:   "prompt two",
		Raw:      "raw two",
	}))

	runs, err := store.Recent(ctx, endpoint, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "prompt two", runs[0].Prompt)
	assert.Nil(t, runs[0].Temperature)
	assert.NotEqual(t, uuid.Nil, runs[0].ID)

	assert.Equal(t, "prompt one", runs[1].Prompt)
	require.NotNil(t, runs[1].Temperature)
	assert.InDelta(t, 0.9, *runs[1].Temperature, 1e-9)
	assert.True(t, older.Equal(runs[1].TS), "ts %v != %v", runs[1].TS, older)
	assert.Equal(t, "meeting notes", runs[1].InputText)
}
