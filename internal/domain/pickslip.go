package domain

import "time"

const (
	PickslipOpen      = "open"
	PickslipCompleted = "completed"
	PickslipCancelled = "cancelled"
)

type Pickslip struct {
	ID             uint           `json:"id"`
	PickslipNumber string         `json:"pickslip_number"`
	Customer       string         `json:"customer"`
	OrderReference string         `json:"order_reference"`
	Status         string         `json:"status"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedBy      uint           `json:"created_by"`
	Lines          []PickslipLine `json:"lines"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type PickslipLine struct {
	ID           uint `json:"id"`
	PickslipID   uint `json:"pickslip_id"`
	PartID       uint `json:"part_id"`
	QtyRequested int  `json:"qty_requested"`
	QtyIssued    int  `json:"qty_issued"`
}

func (l PickslipLine) Outstanding() int {
	return l.QtyRequested - l.QtyIssued
}

type PickSuggestion struct {
	LineID      uint   `json:"line_id"`
	PartID      uint   `json:"part_id"`
	Outstanding int    `json:"outstanding"`
	Picks       []Pick `json:"picks"`
	Shortfall   int    `json:"shortfall"`
}

type Completion struct {
	Pickslip Pickslip `json:"pickslip"`
	Picks    []Pick   `json:"picks"`
}
