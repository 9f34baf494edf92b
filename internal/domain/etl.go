package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ETLSucceeded = "succeeded"
	ETLFailed    = "failed"
)

// SourcePart is one row of the upstream parts feed.
type SourcePart struct {
	ID          int64           `db:"id"`
	PartNumber  string          `db:"part_number"`
	Description string          `db:"description"`
	UOM         string          `db:"uom"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ETLCursor is the position of the last merged source row. Rows are read in
// (updated_at, id) order, so ties on updated_at are resolved by id.
type ETLCursor struct {
	UpdatedAt time.Time
	SourceID  int64
}

// After reports whether row sorts after the cursor.
func (c ETLCursor) After(row SourcePart) bool {
	if row.UpdatedAt.Equal(c.UpdatedAt) {
		return row.ID > c.SourceID
	}

	return row.UpdatedAt.After(c.UpdatedAt)
}

// ETLRun is one row of the run ledger. Watermark and WatermarkSourceID form
// the cursor the next run resumes from.
type ETLRun struct {
	ID                uint       `json:"id"`
	BatchID           string     `json:"batch_id"`
	Job               string     `json:"job"`
	Status            string     `json:"status"`
	RowsCopied        int        `json:"rows_copied"`
	RowsMerged        int        `json:"rows_merged"`
	Watermark         *time.Time `json:"watermark,omitempty"`
	WatermarkSourceID int64      `json:"watermark_source_id,omitempty"`
	Error             string     `json:"error,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        time.Time  `json:"finished_at"`
}
