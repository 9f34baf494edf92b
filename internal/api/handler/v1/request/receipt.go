package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/fleetdepot/depot/internal/domain"
)

type ReceiptLineRequest struct {
	PartID      uint            `json:"part_id"`
	BatchNumber string          `json:"batch_number"`
	QtyReceived int             `json:"qty_received"`
	UnitCost    decimal.Decimal `json:"unit_cost" swaggertype:"string"`
}

func (l ReceiptLineRequest) Validate() error {
	return validation.ValidateStruct(
		&l,
		validation.Field(&l.PartID, validation.Required),
		validation.Field(&l.BatchNumber, validation.Length(0, 64)),
		validation.Field(&l.QtyReceived, validation.Required, validation.Min(1)),
		validation.Field(&l.UnitCost, validation.By(nonNegativeDecimal)),
	)
}

type CreateReceiptRequest struct {
	Supplier   string               `json:"supplier"`
	Reference  string               `json:"reference"`
	ReceivedAt *time.Time           `json:"received_at"`
	Lines      []ReceiptLineRequest `json:"lines"`
}

func (req *CreateReceiptRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Supplier, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Reference, validation.Length(0, 255)),
		validation.Field(&req.Lines, validation.Required),
	)
}

func (req *CreateReceiptRequest) ToDomain(userID uint) domain.Receipt {
	receipt := domain.Receipt{
		Supplier:  req.Supplier,
		Reference: req.Reference,
		CreatedBy: userID,
		Lines:     make([]domain.ReceiptLine, 0, len(req.Lines)),
	}
	if req.ReceivedAt != nil {
		receipt.ReceivedAt = req.ReceivedAt.UTC()
	}
	for _, l := range req.Lines {
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			PartID:      l.PartID,
			BatchNumber: l.BatchNumber,
			QtyReceived: l.QtyReceived,
			UnitCost:    l.UnitCost,
		})
	}

	return receipt
}

type AllocationRequest struct {
	LineID uint `json:"line_id"`
	BinID  uint `json:"bin_id"`
	Qty    int  `json:"qty"`
}

func (a AllocationRequest) Validate() error {
	return validation.ValidateStruct(
		&a,
		validation.Field(&a.LineID, validation.Required),
		validation.Field(&a.BinID, validation.Required),
		validation.Field(&a.Qty, validation.Required, validation.Min(1)),
	)
}

type AllocateRequest struct {
	Allocations []AllocationRequest `json:"allocations"`
}

func (req *AllocateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Allocations, validation.Required),
	)
}

func (req *AllocateRequest) ToDomain() []domain.Allocation {
	allocations := make([]domain.Allocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, domain.Allocation{
			LineID: a.LineID,
			BinID:  a.BinID,
			Qty:    a.Qty,
		})
	}

	return allocations
}
