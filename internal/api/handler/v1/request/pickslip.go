package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/fleetdepot/depot/internal/domain"
)

var errDuplicatePart = errors.New("each part may appear on one line only")

type PickslipLineRequest struct {
	PartID       uint `json:"part_id"`
	QtyRequested int  `json:"qty_requested"`
}

func (l PickslipLineRequest) Validate() error {
	return validation.ValidateStruct(
		&l,
		validation.Field(&l.PartID, validation.Required),
		validation.Field(&l.QtyRequested, validation.Required, validation.Min(1)),
	)
}

type CreatePickslipRequest struct {
	Customer       string                `json:"customer"`
	OrderReference string                `json:"order_reference"`
	Lines          []PickslipLineRequest `json:"lines"`
}

func (req *CreatePickslipRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Customer, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.OrderReference, validation.Length(0, 255)),
		validation.Field(&req.Lines, validation.Required),
	)
	if err != nil {
		return err
	}

	seen := make(map[uint]struct{}, len(req.Lines))
	for _, l := range req.Lines {
		if _, ok := seen[l.PartID]; ok {
			return errDuplicatePart
		}
		seen[l.PartID] = struct{}{}
	}

	return nil
}

func (req *CreatePickslipRequest) ToDomain(userID uint) domain.Pickslip {
	pickslip := domain.Pickslip{
		Customer:       req.Customer,
		OrderReference: req.OrderReference,
		CreatedBy:      userID,
		Lines:          make([]domain.PickslipLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		pickslip.Lines = append(pickslip.Lines, domain.PickslipLine{
			PartID:       l.PartID,
			QtyRequested: l.QtyRequested,
		})
	}

	return pickslip
}

type HoldRequest struct {
	PartID uint `json:"part_id"`
	Qty    int  `json:"qty"`
}

func (req *HoldRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required),
		validation.Field(&req.Qty, validation.Required, validation.Min(1)),
	)
}

type TransferHoldingRequest struct {
	PickslipID uint `json:"pickslip_id"`
	Qty        int  `json:"qty"`
}

func (req *TransferHoldingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PickslipID, validation.Required),
		validation.Field(&req.Qty, validation.Required, validation.Min(1)),
	)
}

type TransferRequest struct {
	PartID      uint   `json:"part_id"`
	BatchNumber string `json:"batch_number"`
	FromBinID   uint   `json:"from_bin_id"`
	ToBinID     uint   `json:"to_bin_id"`
	Qty         int    `json:"qty"`
}

func (req *TransferRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartID, validation.Required),
		validation.Field(&req.BatchNumber, validation.Length(0, 64)),
		validation.Field(&req.FromBinID, validation.Required),
		validation.Field(&req.ToBinID, validation.Required, validation.NotIn(req.FromBinID).Error("must differ from from_bin_id")),
		validation.Field(&req.Qty, validation.Required, validation.Min(1)),
	)
}

func (req *TransferRequest) ToDomain(userID uint) domain.Transfer {
	return domain.Transfer{
		PartID:      req.PartID,
		BatchNumber: req.BatchNumber,
		FromBinID:   req.FromBinID,
		ToBinID:     req.ToBinID,
		Qty:         req.Qty,
		CreatedBy:   userID,
	}
}
