package service

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/codes"
	"github.com/fleetdepot/depot/internal/repository"
)

var (
	ErrLeadNotFound           = repository.ErrLeadNotFound
	ErrQuoteNotFound          = repository.ErrQuoteNotFound
	ErrInvalidQuoteTransition = repository.ErrInvalidQuoteTransition
)

type SalesRepository interface {
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	FindLead(ctx context.Context, id uint) (domain.Lead, error)
	ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	FindQuote(ctx context.Context, id uint) (domain.Quote, error)
	ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id uint, from []string, status string) (domain.Quote, error)
}

type SalesService struct {
	repo SalesRepository
}

func NewSalesService(repo SalesRepository) *SalesService {
	return &SalesService{
		repo: repo,
	}
}

func (s *SalesService) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}

	created, err := s.repo.CreateLead(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.CreateLead -> %w", err)
	}

	return created, nil
}

func (s *SalesService) GetLead(ctx context.Context, id uint) (domain.Lead, error) {
	lead, err := s.repo.FindLead(ctx, id)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.FindLead -> %w", err)
	}

	return lead, nil
}

func (s *SalesService) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	filter.Limit = clampLimit(filter.Limit)

	leads, err := s.repo.ListLeads(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListLeads -> %w", err)
	}

	return leads, nil
}

func (s *SalesService) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	current, err := s.repo.FindLead(ctx, lead.ID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.FindLead -> %w", err)
	}
	if lead.Status == "" {
		lead.Status = current.Status
	}

	updated, err := s.repo.UpdateLead(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("s.repo.UpdateLead -> %w", err)
	}

	return updated, nil
}

// CreateQuote prices the lines and stores the quote as a draft.
func (s *SalesService) CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	quote.QuoteNumber = codes.NewDocumentNumber(codes.PrefixQuote)
	quote.Status = domain.QuoteDraft
	quote.Price()

	created, err := s.repo.CreateQuote(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("s.repo.CreateQuote -> %w", err)
	}

	return created, nil
}

func (s *SalesService) GetQuote(ctx context.Context, id uint) (domain.Quote, error) {
	quote, err := s.repo.FindQuote(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("s.repo.FindQuote -> %w", err)
	}

	return quote, nil
}

func (s *SalesService) ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error) {
	quotes, err := s.repo.ListQuotes(ctx, leadID, status, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListQuotes -> %w", err)
	}

	return quotes, nil
}

func (s *SalesService) ChangeQuoteStatus(ctx context.Context, id uint, status string) (domain.Quote, error) {
	from := domain.QuoteStatusesBefore(status)
	if len(from) == 0 {
		return domain.Quote{}, ErrInvalidQuoteTransition
	}

	quote, err := s.repo.UpdateQuoteStatus(ctx, id, from, status)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("s.repo.UpdateQuoteStatus -> %w", err)
	}

	return quote, nil
}
