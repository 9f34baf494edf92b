package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/fleetdepot/depot/internal/domain"
)

var errNegativeAmount = errors.New("must not be negative")

type PartRequest struct {
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	UOM         string          `json:"uom"`
	UnitCost    decimal.Decimal `json:"unit_cost" swaggertype:"string"`
}

func (req *PartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PartNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Description, validation.Length(0, 255)),
		validation.Field(&req.UOM, validation.Length(0, 10)),
		validation.Field(&req.UnitCost, validation.By(nonNegativeDecimal)),
	)
}

func (req *PartRequest) ToDomain() domain.Part {
	return domain.Part{
		PartNumber:  req.PartNumber,
		Description: req.Description,
		UOM:         req.UOM,
		UnitCost:    req.UnitCost,
	}
}

func nonNegativeDecimal(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return errNegativeAmount
	}

	return nil
}
