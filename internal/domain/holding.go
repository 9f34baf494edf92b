package domain

import "time"

const (
	HoldingHeld     = "held"
	HoldingIssued   = "issued"
	HoldingReleased = "released"
)

// Holding is stock taken out of a bin and reserved against a pickslip.
type Holding struct {
	ID          uint      `json:"id"`
	PickslipID  uint      `json:"pickslip_id"`
	PartID      uint      `json:"part_id"`
	BinID       uint      `json:"bin_id"`
	BinCode     string    `json:"bin_code"`
	BatchNumber string    `json:"batch_number"`
	ReceivedAt  time.Time `json:"received_at"`
	Qty         int       `json:"qty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
