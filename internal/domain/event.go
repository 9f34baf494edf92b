package domain

import "time"

const (
	EventReceived    = "stock.received"
	EventIssued      = "stock.issued"
	EventHeld        = "stock.held"
	EventReleased    = "stock.released"
	EventTransferred = "stock.transferred"
	EventHoldMoved   = "holding.transferred"
	EventPartsSynced = "parts.synced"
)

// StockEvent is emitted after a stock-changing transaction commits.
type StockEvent struct {
	Type      string    `json:"type"`
	PartID    uint      `json:"part_id,omitempty"`
	BinID     uint      `json:"bin_id,omitempty"`
	Qty       int       `json:"qty"`
	Reference string    `json:"reference,omitempty"`
	At        time.Time `json:"at"`
}
