package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrLeadNotFound           = dao.ErrLeadNotFound
	ErrQuoteNotFound          = dao.ErrQuoteNotFound
	ErrInvalidQuoteTransition = dao.ErrInvalidQuoteTransition
)

type SalesDAO interface {
	InsertLead(ctx context.Context, lead dao.Lead) (dao.Lead, error)
	FindLead(ctx context.Context, id uint) (dao.Lead, error)
	ListLeads(ctx context.Context, status string, limit, offset int) ([]dao.Lead, error)
	UpdateLead(ctx context.Context, lead dao.Lead) (dao.Lead, error)
	InsertQuote(ctx context.Context, quote dao.Quote) (dao.Quote, error)
	FindQuote(ctx context.Context, id uint) (dao.Quote, error)
	ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]dao.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id uint, from []string, status string) (dao.Quote, error)
}

type SalesRepository struct {
	dao SalesDAO
}

func NewSalesRepository(dao SalesDAO) *SalesRepository {
	return &SalesRepository{
		dao: dao,
	}
}

func (r *SalesRepository) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	created, err := r.dao.InsertLead(ctx, leadDomainToDAO(lead))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.InsertLead -> %w", err)
	}

	return leadDAOToDomain(created), nil
}

func (r *SalesRepository) FindLead(ctx context.Context, id uint) (domain.Lead, error) {
	lead, err := r.dao.FindLead(ctx, id)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.FindLead -> %w", err)
	}

	return leadDAOToDomain(lead), nil
}

func (r *SalesRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	found, err := r.dao.ListLeads(ctx, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListLeads -> %w", err)
	}

	leads := make([]domain.Lead, 0, len(found))
	for _, l := range found {
		leads = append(leads, leadDAOToDomain(l))
	}

	return leads, nil
}

func (r *SalesRepository) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	updated, err := r.dao.UpdateLead(ctx, leadDomainToDAO(lead))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("r.dao.UpdateLead -> %w", err)
	}

	return leadDAOToDomain(updated), nil
}

func (r *SalesRepository) CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	lines := make([]dao.QuoteLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, dao.QuoteLine{
			Description:  l.Description,
			VehicleModel: l.VehicleModel,
			Qty:          l.Qty,
			UnitPrice:    l.UnitPrice,
			DiscountPct:  l.DiscountPct,
			LineTotal:    l.LineTotal,
		})
	}

	created, err := r.dao.InsertQuote(ctx, dao.Quote{
		QuoteNumber: quote.QuoteNumber,
		LeadID:      quote.LeadID,
		Status:      quote.Status,
		ValidUntil:  quote.ValidUntil,
		Total:       quote.Total,
		CreatedBy:   optionalID(quote.CreatedBy),
		Lines:       lines,
	})
	if err != nil {
		return domain.Quote{}, fmt.Errorf("r.dao.InsertQuote -> %w", err)
	}

	return quoteDAOToDomain(created), nil
}

func (r *SalesRepository) FindQuote(ctx context.Context, id uint) (domain.Quote, error) {
	quote, err := r.dao.FindQuote(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("r.dao.FindQuote -> %w", err)
	}

	return quoteDAOToDomain(quote), nil
}

func (r *SalesRepository) ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error) {
	found, err := r.dao.ListQuotes(ctx, leadID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListQuotes -> %w", err)
	}

	quotes := make([]domain.Quote, 0, len(found))
	for _, q := range found {
		quotes = append(quotes, quoteDAOToDomain(q))
	}

	return quotes, nil
}

func (r *SalesRepository) UpdateQuoteStatus(ctx context.Context, id uint, from []string, status string) (domain.Quote, error) {
	quote, err := r.dao.UpdateQuoteStatus(ctx, id, from, status)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("r.dao.UpdateQuoteStatus -> %w", err)
	}

	return quoteDAOToDomain(quote), nil
}

func leadDomainToDAO(l domain.Lead) dao.Lead {
	return dao.Lead{
		ID:          l.ID,
		Company:     l.Company,
		ContactName: l.ContactName,
		Email:       l.Email,
		Phone:       l.Phone,
		FleetSize:   l.FleetSize,
		Status:      l.Status,
		Notes:       l.Notes,
		OwnerID:     optionalID(l.OwnerID),
	}
}

func leadDAOToDomain(l dao.Lead) domain.Lead {
	return domain.Lead{
		ID:          l.ID,
		Company:     l.Company,
		ContactName: l.ContactName,
		Email:       l.Email,
		Phone:       l.Phone,
		FleetSize:   l.FleetSize,
		Status:      l.Status,
		Notes:       l.Notes,
		OwnerID:     valueID(l.OwnerID),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func quoteDAOToDomain(q dao.Quote) domain.Quote {
	quote := domain.Quote{
		ID:          q.ID,
		QuoteNumber: q.QuoteNumber,
		LeadID:      q.LeadID,
		Status:      q.Status,
		ValidUntil:  q.ValidUntil,
		Total:       q.Total,
		CreatedBy:   valueID(q.CreatedBy),
		Lines:       make([]domain.QuoteLine, 0, len(q.Lines)),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	for _, l := range q.Lines {
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			ID:           l.ID,
			QuoteID:      l.QuoteID,
			Description:  l.Description,
			VehicleModel: l.VehicleModel,
			Qty:          l.Qty,
			UnitPrice:    l.UnitPrice,
			DiscountPct:  l.DiscountPct,
			LineTotal:    l.LineTotal,
		})
	}

	return quote
}
