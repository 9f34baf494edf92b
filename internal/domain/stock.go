package domain

import "time"

type BinStock struct {
	ID          uint      `json:"id"`
	PartID      uint      `json:"part_id"`
	PartNumber  string    `json:"part_number,omitempty"`
	BinID       uint      `json:"bin_id"`
	BinCode     string    `json:"bin_code"`
	Warehouse   string    `json:"warehouse,omitempty"`
	BatchNumber string    `json:"batch_number"`
	ReceivedAt  time.Time `json:"received_at"`
	QtyOnHand   int       `json:"qty_on_hand"`
}

type PartStock struct {
	PartID uint       `json:"part_id"`
	Total  int        `json:"total"`
	Bins   []BinStock `json:"bins"`
}

const (
	MovementReceive     = "receive"
	MovementIssue       = "issue"
	MovementHold        = "hold"
	MovementRelease     = "release"
	MovementTransferOut = "transfer_out"
	MovementTransferIn  = "transfer_in"
)

type StockMovement struct {
	ID            uint      `json:"id"`
	PartID        uint      `json:"part_id"`
	BinID         uint      `json:"bin_id"`
	BatchNumber   string    `json:"batch_number"`
	Qty           int       `json:"qty"`
	Type          string    `json:"movement_type"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   uint      `json:"reference_id"`
	CreatedBy     uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type MovementFilter struct {
	PartID uint
	From   time.Time
	To     time.Time
	Limit  int
}

type Transfer struct {
	PartID      uint   `json:"part_id"`
	BatchNumber string `json:"batch_number"`
	FromBinID   uint   `json:"from_bin_id"`
	ToBinID     uint   `json:"to_bin_id"`
	Qty         int    `json:"qty"`
	CreatedBy   uint   `json:"-"`
}

const (
	PickSourceHolding = "holding"
	PickSourceBin     = "bin"
)

// Pick is one bin/batch quantity chosen in FIFO order.
type Pick struct {
	PartID      uint      `json:"part_id"`
	BinID       uint      `json:"bin_id"`
	BinCode     string    `json:"bin_code"`
	BatchNumber string    `json:"batch_number"`
	ReceivedAt  time.Time `json:"received_at"`
	Qty         int       `json:"qty"`
	Source      string    `json:"source"`
	HoldingID   uint      `json:"holding_id,omitempty"`
}
