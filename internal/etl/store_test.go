package etl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/db"
	"github.com/fleetdepot/depot/internal/db/dbtest"
	"github.com/fleetdepot/depot/internal/domain"
)

var (
	testURL  string
	testPool *pgxpool.Pool
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	url, purge, err := dbtest.Start()
	if errors.Is(err, dbtest.ErrSkipped) {
		fmt.Println(err)
		return m.Run()
	}
	if err != nil {
		fmt.Printf("could not start postgres: %v\n", err)
		return 1
	}
	defer purge()

	testURL = url
	testPool, err = db.OpenPool(context.Background(), url)
	if err != nil {
		fmt.Printf("could not open pool: %v\n", err)
		return 1
	}
	defer testPool.Close()

	return m.Run()
}

const feedDDL = `
	CREATE TABLE IF NOT EXISTS erp_parts (
		id          BIGSERIAL PRIMARY KEY,
		part_number TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		uom         TEXT NOT NULL DEFAULT '',
		unit_cost   NUMERIC(14, 4) NOT NULL DEFAULT 0,
		updated_at  TIMESTAMPTZ NOT NULL
	)`

func setup(t *testing.T) (context.Context, *SQLSource) {
	t.Helper()
	if testPool == nil {
		t.Skip("postgres not available")
	}

	ctx := context.Background()
	_, err := testPool.Exec(ctx, feedDDL)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, `TRUNCATE erp_parts, parts, etl_part_staging, etl_runs RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	sdb, err := sqlx.Connect("pgx", testURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdb.Close() })

	return ctx, NewSQLSource(sdb, "erp_parts")
}

func addFeedRow(t *testing.T, ctx context.Context, number, desc, cost string, at time.Time) {
	t.Helper()
	_, err := testPool.Exec(ctx,
		`INSERT INTO erp_parts (part_number, description, uom, unit_cost, updated_at) VALUES ($1, $2, 'EA', $3, $4)`,
		number, desc, cost, at)
	require.NoError(t, err)
}

func TestSQLSource_Fetch(t *testing.T) {
	ctx, source := setup(t)
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	addFeedRow(t, ctx, "A-1", "first", "1.50", base.Add(time.Minute))
	addFeedRow(t, ctx, "A-2", "second", "2.00", base.Add(2*time.Minute))
	addFeedRow(t, ctx, "A-3", "old", "9.00", base.Add(-time.Minute))

	rows, err := source.Fetch(ctx, domain.ETLCursor{UpdatedAt: base}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[0].PartNumber)
	assert.True(t, decimal.RequireFromString("1.5").Equal(rows[0].UnitCost))

	rows, err = source.Fetch(ctx, domain.ETLCursor{UpdatedAt: base}, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSQLSource_FetchBreaksTiesByID(t *testing.T) {
	ctx, source := setup(t)
	stamp := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []string{"T-1", "T-2", "T-3"} {
		addFeedRow(t, ctx, n, "bulk", "1", stamp)
	}

	page, err := source.Fetch(ctx, domain.ETLCursor{UpdatedAt: stamp, SourceID: 1}, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "T-2", page[0].PartNumber)
	assert.Equal(t, "T-3", page[1].PartNumber)
}

func TestJob_EndToEndSharedTimestamp(t *testing.T) {
	ctx, source := setup(t)
	stamp := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, n := range []string{"S-1", "S-2", "S-3"} {
		addFeedRow(t, ctx, n, "bulk", "1", stamp)
	}

	store := NewStore(testPool)
	job := NewJob(source, store, nopPublisher{}, 2)
	for i := 0; i < 3; i++ {
		_, err := job.RunOnce(ctx)
		require.NoError(t, err)
	}

	var merged int
	require.NoError(t, testPool.QueryRow(ctx, `SELECT COUNT(*) FROM parts WHERE part_number LIKE 'S-%'`).Scan(&merged))
	assert.Equal(t, 3, merged)

	cursor, err := store.Watermark(ctx, JobParts)
	require.NoError(t, err)
	assert.Equal(t, stamp, cursor.UpdatedAt.UTC())
	assert.Equal(t, int64(3), cursor.SourceID)
}

func TestJob_EndToEnd(t *testing.T) {
	ctx, source := setup(t)
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	addFeedRow(t, ctx, "brk-01", "brake pad", "10.25", base.Add(time.Minute))
	addFeedRow(t, ctx, "flt-02", "filter", "3", base.Add(2*time.Minute))
	// a later revision of the same part in the same batch wins
	addFeedRow(t, ctx, "BRK-01", "brake pad v2", "11.00", base.Add(3*time.Minute))

	_, err := testPool.Exec(ctx, `INSERT INTO parts (part_number, description, unit_cost) VALUES ('FLT-02', 'stale', 1)`)
	require.NoError(t, err)

	store := NewStore(testPool)
	job := NewJob(source, store, nopPublisher{}, 100)

	runResult, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ETLSucceeded, runResult.Status)
	assert.Equal(t, 3, runResult.RowsCopied)
	assert.Equal(t, 2, runResult.RowsMerged)
	assert.Equal(t, base.Add(3*time.Minute), runResult.Watermark.UTC())

	var desc, cost, ref string
	require.NoError(t, testPool.QueryRow(ctx,
		`SELECT description, unit_cost::text, source_ref FROM parts WHERE part_number = 'BRK-01'`).Scan(&desc, &cost, &ref))
	assert.Equal(t, "brake pad v2", desc)
	assert.Equal(t, "11.0000", cost)
	assert.Equal(t, "3", ref)

	require.NoError(t, testPool.QueryRow(ctx, `SELECT description FROM parts WHERE part_number = 'FLT-02'`).Scan(&desc))
	assert.Equal(t, "filter", desc)

	var staged int
	require.NoError(t, testPool.QueryRow(ctx, `SELECT COUNT(*) FROM etl_part_staging`).Scan(&staged))
	assert.Zero(t, staged)

	// nothing new: the next run copies nothing and keeps the watermark
	second, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.RowsCopied)

	wm, err := store.Watermark(ctx, JobParts)
	require.NoError(t, err)
	assert.Equal(t, base.Add(3*time.Minute), wm.UpdatedAt.UTC())
	assert.Equal(t, int64(3), wm.SourceID)

	runs, err := job.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.BatchID, runs[0].BatchID)
}

func TestStore_RecordFailure(t *testing.T) {
	ctx, _ := setup(t)
	store := NewStore(testPool)

	run := domain.ETLRun{BatchID: "8a4c5b8e-1f55-4b0a-9a53-27a4b1f0c0de", Job: JobParts, StartedAt: time.Now().UTC()}
	require.NoError(t, store.RecordFailure(ctx, &run, errors.New("source unreachable")))
	assert.NotZero(t, run.ID)

	wm, err := store.Watermark(ctx, JobParts)
	require.NoError(t, err)
	assert.Equal(t, domain.ETLCursor{UpdatedAt: time.Unix(0, 0).UTC()}, wm)

	runs, err := store.Runs(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.ETLFailed, runs[0].Status)
	assert.Equal(t, "source unreachable", runs[0].Error)
	assert.Nil(t, runs[0].Watermark)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...domain.StockEvent) {}
