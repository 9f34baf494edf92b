package etl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/domain"
)

type mockSource struct{ mock.Mock }

func (m *mockSource) Fetch(ctx context.Context, after domain.ETLCursor, limit int) ([]domain.SourcePart, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]domain.SourcePart), args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Watermark(ctx context.Context, job string) (domain.ETLCursor, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(domain.ETLCursor), args.Error(1)
}

func (m *mockStore) Load(ctx context.Context, run *domain.ETLRun, rows []domain.SourcePart) error {
	args := m.Called(ctx, run, rows)
	if args.Error(0) == nil {
		run.Status = domain.ETLSucceeded
		run.RowsCopied = len(rows)
		run.RowsMerged = len(rows)
		run.FinishedAt = run.StartedAt.Add(time.Second)
	}
	return args.Error(0)
}

func (m *mockStore) RecordFailure(ctx context.Context, run *domain.ETLRun, cause error) error {
	args := m.Called(ctx, run, cause)
	run.Status = domain.ETLFailed
	run.Error = cause.Error()
	return args.Error(0)
}

func (m *mockStore) Runs(ctx context.Context, limit int) ([]domain.ETLRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ETLRun), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, events ...domain.StockEvent) {
	m.Called(ctx, events)
}

func TestJob_RunOnce(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newest := since.Add(2 * time.Hour)
	rows := []domain.SourcePart{
		{ID: 1, PartNumber: " brk-01", UnitCost: decimal.NewFromInt(3), UpdatedAt: since.Add(time.Hour)},
		{ID: 2, PartNumber: "", UpdatedAt: newest},
		{ID: 3, PartNumber: "flt-9", UOM: "BOX", UpdatedAt: since.Add(30 * time.Minute)},
	}

	source := new(mockSource)
	start := domain.ETLCursor{UpdatedAt: since, SourceID: 40}
	source.On("Fetch", mock.Anything, start, 100).Return(rows, nil)
	store := new(mockStore)
	store.On("Watermark", mock.Anything, JobParts).Return(start, nil)
	store.On("Load", mock.Anything, mock.AnythingOfType("*domain.ETLRun"), mock.MatchedBy(func(got []domain.SourcePart) bool {
		return len(got) == 2 && got[0].PartNumber == "BRK-01" && got[0].UOM == "EA" &&
			got[1].PartNumber == "FLT-9" && got[1].UOM == "BOX"
	})).Return(nil)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []domain.StockEvent) bool {
		return len(events) == 1 && events[0].Type == domain.EventPartsSynced && events[0].Qty == 2
	})).Return()

	run, err := NewJob(source, store, pub, 100).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ETLSucceeded, run.Status)
	require.NotNil(t, run.Watermark)
	assert.Equal(t, newest, *run.Watermark)
	assert.Equal(t, int64(2), run.WatermarkSourceID)
	assert.NotEmpty(t, run.BatchID)
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestJob_RunOnceLoadFailure(t *testing.T) {
	since := time.Unix(0, 0).UTC()
	source := new(mockSource)
	source.On("Fetch", mock.Anything, domain.ETLCursor{UpdatedAt: since}, 10).Return([]domain.SourcePart{{ID: 1, PartNumber: "X", UpdatedAt: since.Add(time.Minute)}}, nil)
	store := new(mockStore)
	store.On("Watermark", mock.Anything, JobParts).Return(domain.ETLCursor{UpdatedAt: since}, nil)
	store.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("copy failed"))
	store.On("RecordFailure", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	pub := new(mockPublisher)

	run, err := NewJob(source, store, pub, 10).RunOnce(context.Background())

	assert.ErrorContains(t, err, "copy failed")
	assert.Equal(t, domain.ETLFailed, run.Status)
	store.AssertCalled(t, "RecordFailure", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestJob_RunOnceEmptyBatchKeepsWatermark(t *testing.T) {
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	source := new(mockSource)
	start := domain.ETLCursor{UpdatedAt: since, SourceID: 7}
	source.On("Fetch", mock.Anything, start, 10).Return([]domain.SourcePart{}, nil)
	store := new(mockStore)
	store.On("Watermark", mock.Anything, JobParts).Return(start, nil)
	store.On("Load", mock.Anything, mock.Anything, []domain.SourcePart{}).Return(nil)
	pub := new(mockPublisher)

	run, err := NewJob(source, store, pub, 10).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, since, *run.Watermark)
	assert.Equal(t, int64(7), run.WatermarkSourceID)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

// feed pages rows in (updated_at, id) order the way SQLSource does.
type feed struct {
	rows []domain.SourcePart
}

func (f *feed) Fetch(_ context.Context, after domain.ETLCursor, limit int) ([]domain.SourcePart, error) {
	var out []domain.SourcePart
	for _, r := range f.rows {
		if after.After(r) && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

// ledger keeps the cursor of the last successful run and every loaded part.
type ledger struct {
	cursor domain.ETLCursor
	loaded map[string]int
}

func (l *ledger) Watermark(context.Context, string) (domain.ETLCursor, error) {
	return l.cursor, nil
}

func (l *ledger) Load(_ context.Context, run *domain.ETLRun, rows []domain.SourcePart) error {
	for _, r := range rows {
		l.loaded[r.PartNumber]++
	}
	l.cursor = domain.ETLCursor{UpdatedAt: *run.Watermark, SourceID: run.WatermarkSourceID}
	run.Status = domain.ETLSucceeded
	run.RowsCopied = len(rows)
	return nil
}

func (l *ledger) RecordFailure(context.Context, *domain.ETLRun, error) error { return nil }

func (l *ledger) Runs(context.Context, int) ([]domain.ETLRun, error) { return nil, nil }

func TestJob_RunOnceResumesWithinSharedTimestamp(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := &feed{rows: []domain.SourcePart{
		{ID: 1, PartNumber: "A", UpdatedAt: stamp},
		{ID: 2, PartNumber: "B", UpdatedAt: stamp},
		{ID: 3, PartNumber: "C", UpdatedAt: stamp},
		{ID: 4, PartNumber: "D", UpdatedAt: stamp.Add(time.Second)},
	}}
	store := &ledger{cursor: domain.ETLCursor{UpdatedAt: time.Unix(0, 0).UTC()}, loaded: map[string]int{}}
	job := NewJob(src, store, nopPublisher{}, 2)

	first, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.RowsCopied)
	assert.Equal(t, int64(2), first.WatermarkSourceID)

	second, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.RowsCopied)

	third, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, third.RowsCopied)

	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1, "D": 1}, store.loaded)
	assert.Equal(t, domain.ETLCursor{UpdatedAt: stamp.Add(time.Second), SourceID: 4}, store.cursor)
}

func TestJob_RunsClampsLimit(t *testing.T) {
	store := new(mockStore)
	store.On("Runs", mock.Anything, 20).Return([]domain.ETLRun{}, nil)

	_, err := NewJob(new(mockSource), store, new(mockPublisher), 10).Runs(context.Background(), 0)

	require.NoError(t, err)
	store.AssertExpectations(t)
}
