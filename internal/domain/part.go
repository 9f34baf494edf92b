package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	ID          uint            `json:"id"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	UOM         string          `json:"uom"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	SourceRef   string          `json:"source_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PartFilter struct {
	Query  string
	Limit  int
	Offset int
}
