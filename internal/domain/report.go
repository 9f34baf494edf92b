package domain

import "time"

type StockOnHandRow struct {
	PartNumber  string    `json:"part_number"`
	Description string    `json:"description"`
	Warehouse   string    `json:"warehouse"`
	BinCode     string    `json:"bin_code"`
	BatchNumber string    `json:"batch_number"`
	ReceivedAt  time.Time `json:"received_at"`
	QtyOnHand   int       `json:"qty_on_hand"`
}
