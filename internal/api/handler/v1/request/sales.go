package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/fleetdepot/depot/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	errPercentage = errors.New("must be between 0 and 100")
)

type LeadRequest struct {
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	FleetSize   int    `json:"fleet_size"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (req *LeadRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Company, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.ContactName, validation.Length(0, 255)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 32)),
		validation.Field(&req.FleetSize, validation.Min(0)),
		validation.Field(&req.Status, validation.In(stringsToAny(domain.LeadStatuses)...)),
		validation.Field(&req.Notes, validation.Length(0, 2000)),
	)
}

func (req *LeadRequest) ToDomain(ownerID uint) domain.Lead {
	return domain.Lead{
		Company:     req.Company,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		FleetSize:   req.FleetSize,
		Status:      req.Status,
		Notes:       req.Notes,
		OwnerID:     ownerID,
	}
}

type QuoteLineRequest struct {
	Description  string          `json:"description"`
	VehicleModel string          `json:"vehicle_model"`
	Qty          int             `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price" swaggertype:"string"`
	DiscountPct  decimal.Decimal `json:"discount_pct" swaggertype:"string"`
}

func (l QuoteLineRequest) Validate() error {
	return validation.ValidateStruct(
		&l,
		validation.Field(&l.Description, validation.Required, validation.Length(1, 255)),
		validation.Field(&l.VehicleModel, validation.Length(0, 128)),
		validation.Field(&l.Qty, validation.Required, validation.Min(1)),
		validation.Field(&l.UnitPrice, validation.By(nonNegativeDecimal)),
		validation.Field(&l.DiscountPct, validation.By(percentage)),
	)
}

type CreateQuoteRequest struct {
	LeadID     uint               `json:"lead_id"`
	ValidUntil *time.Time         `json:"valid_until"`
	Lines      []QuoteLineRequest `json:"lines"`
}

func (req *CreateQuoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LeadID, validation.Required),
		validation.Field(&req.Lines, validation.Required),
	)
}

func (req *CreateQuoteRequest) ToDomain(userID uint) domain.Quote {
	quote := domain.Quote{
		LeadID:     req.LeadID,
		ValidUntil: req.ValidUntil,
		CreatedBy:  userID,
		Lines:      make([]domain.QuoteLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			Description:  l.Description,
			VehicleModel: l.VehicleModel,
			Qty:          l.Qty,
			UnitPrice:    l.UnitPrice,
			DiscountPct:  l.DiscountPct,
		})
	}

	return quote
}

type QuoteStatusRequest struct {
	Status string `json:"status"`
}

func (req *QuoteStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In(domain.QuoteSent, domain.QuoteAccepted, domain.QuoteRejected)),
	)
}

func percentage(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() || d.GreaterThan(hundred) {
		return errPercentage
	}

	return nil
}
