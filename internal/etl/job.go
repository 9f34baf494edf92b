// Package etl pulls the upstream parts feed into the parts table through a
// staging table and MERGE.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/codes"
)

const JobParts = "parts"

type Source interface {
	Fetch(ctx context.Context, after domain.ETLCursor, limit int) ([]domain.SourcePart, error)
}

type RunStore interface {
	Watermark(ctx context.Context, job string) (domain.ETLCursor, error)
	Load(ctx context.Context, run *domain.ETLRun, rows []domain.SourcePart) error
	RecordFailure(ctx context.Context, run *domain.ETLRun, cause error) error
	Runs(ctx context.Context, limit int) ([]domain.ETLRun, error)
}

type Publisher interface {
	Publish(ctx context.Context, events ...domain.StockEvent)
}

type Job struct {
	source    Source
	store     RunStore
	pub       Publisher
	batchSize int
}

func NewJob(source Source, store RunStore, pub Publisher, batchSize int) *Job {
	return &Job{
		source:    source,
		store:     store,
		pub:       pub,
		batchSize: batchSize,
	}
}

// RunOnce moves one batch of changed source rows into parts. A failed batch
// is rolled back and recorded as a failed run.
func (j *Job) RunOnce(ctx context.Context) (domain.ETLRun, error) {
	run := domain.ETLRun{
		BatchID:   uuid.NewString(),
		Job:       JobParts,
		StartedAt: time.Now().UTC(),
	}
	log := zap.L().With(zap.String("job", run.Job), zap.String("batch_id", run.BatchID))

	err := j.run(ctx, &run)
	if err != nil {
		log.Error("etl run failed", zap.Error(err))
		if recErr := j.store.RecordFailure(context.WithoutCancel(ctx), &run, err); recErr != nil {
			log.Error("etl failure not recorded", zap.Error(recErr))
		}

		return run, err
	}

	log.Info("etl run finished",
		zap.Int("rows_copied", run.RowsCopied),
		zap.Int("rows_merged", run.RowsMerged),
		zap.Duration("took", run.FinishedAt.Sub(run.StartedAt)))
	if run.RowsMerged > 0 {
		j.pub.Publish(ctx, domain.StockEvent{
			Type:      domain.EventPartsSynced,
			Qty:       run.RowsMerged,
			Reference: run.BatchID,
			At:        run.FinishedAt,
		})
	}

	return run, nil
}

func (j *Job) run(ctx context.Context, run *domain.ETLRun) error {
	cursor, err := j.store.Watermark(ctx, run.Job)
	if err != nil {
		return fmt.Errorf("j.store.Watermark -> %w", err)
	}

	rows, err := j.source.Fetch(ctx, cursor, j.batchSize)
	if err != nil {
		return fmt.Errorf("j.source.Fetch -> %w", err)
	}

	// the cursor never moves backwards, even for an empty batch
	cleaned := make([]domain.SourcePart, 0, len(rows))
	for _, r := range rows {
		if cursor.After(r) {
			cursor = domain.ETLCursor{UpdatedAt: r.UpdatedAt, SourceID: r.ID}
		}
		r.PartNumber = codes.Normalize(r.PartNumber)
		if r.PartNumber == "" {
			continue
		}
		if r.UOM == "" {
			r.UOM = "EA"
		}
		cleaned = append(cleaned, r)
	}
	run.Watermark = &cursor.UpdatedAt
	run.WatermarkSourceID = cursor.SourceID

	if err = j.store.Load(ctx, run, cleaned); err != nil {
		return fmt.Errorf("j.store.Load -> %w", err)
	}

	return nil
}

func (j *Job) Runs(ctx context.Context, limit int) ([]domain.ETLRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	runs, err := j.store.Runs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("j.store.Runs -> %w", err)
	}

	return runs, nil
}
