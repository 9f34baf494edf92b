package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetdepot/depot/internal/domain"
)

var stagingColumns = []string{"batch_id", "source_id", "part_number", "description", "uom", "unit_cost", "source_updated_at"}

// mergeSQL upserts the newest staged row per part number into parts.
const mergeSQL = `
	MERGE INTO parts p
	USING (
		SELECT DISTINCT ON (part_number) part_number, description, uom, unit_cost, source_id
		FROM etl_part_staging
		WHERE batch_id = $1
		ORDER BY part_number, source_updated_at DESC, source_id DESC
	) s ON p.part_number = s.part_number
	WHEN MATCHED THEN UPDATE SET
		description = s.description,
		uom = s.uom,
		unit_cost = s.unit_cost,
		source_ref = s.source_id::text,
		updated_at = NOW()
	WHEN NOT MATCHED THEN INSERT (part_number, description, uom, unit_cost, source_ref)
		VALUES (s.part_number, s.description, s.uom, s.unit_cost, s.source_id::text)`

const insertRunSQL = `
	INSERT INTO etl_runs (batch_id, job, status, rows_copied, rows_merged, watermark, watermark_source_id, error, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

// Store stages and merges batches with the native pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
	}
}

// Watermark is the cursor of the newest source row merged by a successful run of job.
func (s *Store) Watermark(ctx context.Context, job string) (domain.ETLCursor, error) {
	var cursor domain.ETLCursor
	err := s.pool.QueryRow(ctx, `
		SELECT watermark, watermark_source_id
		FROM etl_runs
		WHERE job = $1 AND status = $2 AND watermark IS NOT NULL
		ORDER BY watermark DESC, watermark_source_id DESC
		LIMIT 1`, job, domain.ETLSucceeded,
	).Scan(&cursor.UpdatedAt, &cursor.SourceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ETLCursor{UpdatedAt: time.Unix(0, 0).UTC()}, nil
	}
	if err != nil {
		return domain.ETLCursor{}, fmt.Errorf("s.pool.QueryRow -> %w", err)
	}

	return cursor, nil
}

// Load copies rows into staging, merges them into parts, clears the batch and
// records the run, all in one transaction. run is completed in place.
func (s *Store) Load(ctx context.Context, run *domain.ETLRun, rows []domain.SourcePart) error {
	batchID, err := uuid.Parse(run.BatchID)
	if err != nil {
		return fmt.Errorf("uuid.Parse -> %w", err)
	}
	batch := pgtype.UUID{Bytes: batchID, Valid: true}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		copied, err := tx.CopyFrom(ctx, pgx.Identifier{"etl_part_staging"}, stagingColumns,
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				r := rows[i]
				var cost pgtype.Numeric
				if err := cost.Scan(r.UnitCost.String()); err != nil {
					return nil, fmt.Errorf("row %d unit_cost: %w", r.ID, err)
				}

				return []any{batch, r.ID, r.PartNumber, r.Description, r.UOM, cost, r.UpdatedAt}, nil
			}))
		if err != nil {
			return fmt.Errorf("tx.CopyFrom -> %w", err)
		}

		tag, err := tx.Exec(ctx, mergeSQL, batch)
		if err != nil {
			return fmt.Errorf("tx.Exec merge -> %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM etl_part_staging WHERE batch_id = $1`, batch); err != nil {
			return fmt.Errorf("tx.Exec delete staging -> %w", err)
		}

		run.RowsCopied = int(copied)
		run.RowsMerged = int(tag.RowsAffected())
		run.Status = domain.ETLSucceeded
		run.FinishedAt = time.Now().UTC()

		return insertRun(ctx, tx, run)
	})
}

// RecordFailure stores a failed run outside any batch transaction.
func (s *Store) RecordFailure(ctx context.Context, run *domain.ETLRun, cause error) error {
	run.Status = domain.ETLFailed
	run.Error = cause.Error()
	run.RowsMerged = 0
	run.FinishedAt = time.Now().UTC()

	return insertRun(ctx, s.pool, run)
}

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]domain.ETLRun, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, batch_id::text, job, status, rows_copied, rows_merged, watermark, watermark_source_id,
			error, started_at, finished_at
		FROM etl_runs
		ORDER BY finished_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("s.pool.Query -> %w", err)
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ETLRun, error) {
		var (
			r  domain.ETLRun
			id int64
		)
		err := row.Scan(&id, &r.BatchID, &r.Job, &r.Status, &r.RowsCopied, &r.RowsMerged,
			&r.Watermark, &r.WatermarkSourceID, &r.Error, &r.StartedAt, &r.FinishedAt)
		r.ID = uint(id)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows -> %w", err)
	}

	return runs, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertRun(ctx context.Context, q rowQuerier, run *domain.ETLRun) error {
	batchID, err := uuid.Parse(run.BatchID)
	if err != nil {
		return fmt.Errorf("uuid.Parse -> %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, insertRunSQL,
		pgtype.UUID{Bytes: batchID, Valid: true}, run.Job, run.Status, run.RowsCopied, run.RowsMerged,
		run.Watermark, run.WatermarkSourceID, run.Error, run.StartedAt, run.FinishedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("q.QueryRow insert run -> %w", err)
	}
	run.ID = uint(id)

	return nil
}
