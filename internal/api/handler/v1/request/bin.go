package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/fleetdepot/depot/internal/domain"
)

var errEmptyBinUpdate = errors.New("capacity or active is required")

type CreateBinRequest struct {
	Warehouse  string `json:"warehouse"`
	Section    string `json:"section"`
	SubSection string `json:"sub_section"`
	Bin        string `json:"bin"`
	Capacity   int    `json:"capacity"`
}

func (req *CreateBinRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Warehouse, validation.Required, validation.Length(1, 32)),
		validation.Field(&req.Section, validation.Required, validation.Length(1, 16)),
		validation.Field(&req.SubSection, validation.Required, validation.Length(1, 16)),
		validation.Field(&req.Bin, validation.Required, validation.Length(1, 16)),
		validation.Field(&req.Capacity, validation.Min(0)),
	)
}

func (req *CreateBinRequest) ToDomain() domain.Bin {
	return domain.Bin{
		Warehouse:  req.Warehouse,
		Section:    req.Section,
		SubSection: req.SubSection,
		Label:      req.Bin,
		Capacity:   req.Capacity,
	}
}

type UpdateBinRequest struct {
	Capacity *int  `json:"capacity"`
	Active   *bool `json:"active"`
}

func (req *UpdateBinRequest) Validate() error {
	if req.Capacity == nil && req.Active == nil {
		return errEmptyBinUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Capacity, validation.Min(0)),
	)
}

func (req *UpdateBinRequest) ToDomain() domain.BinUpdate {
	return domain.BinUpdate{
		Capacity: req.Capacity,
		Active:   req.Active,
	}
}
