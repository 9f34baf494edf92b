package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReceiptOpen      = "open"
	ReceiptAllocated = "allocated"
	ReceiptCancelled = "cancelled"
)

type Receipt struct {
	ID            uint          `json:"id"`
	ReceiptNumber string        `json:"receipt_number"`
	Supplier      string        `json:"supplier"`
	Reference     string        `json:"reference"`
	Status        string        `json:"status"`
	ReceivedAt    time.Time     `json:"received_at"`
	CreatedBy     uint          `json:"created_by"`
	Lines         []ReceiptLine `json:"lines"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type ReceiptLine struct {
	ID           uint            `json:"id"`
	ReceiptID    uint            `json:"receipt_id"`
	PartID       uint            `json:"part_id"`
	BatchNumber  string          `json:"batch_number"`
	QtyReceived  int             `json:"qty_received"`
	QtyAllocated int             `json:"qty_allocated"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

func (l ReceiptLine) Outstanding() int {
	return l.QtyReceived - l.QtyAllocated
}

// Allocation places qty units of a receipt line into a bin.
type Allocation struct {
	LineID uint `json:"line_id"`
	BinID  uint `json:"bin_id"`
	Qty    int  `json:"qty"`
}

type AllocationResult struct {
	Receipt Receipt    `json:"receipt"`
	Stock   []BinStock `json:"stock"`
}
