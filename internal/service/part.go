package service

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/codes"
	"github.com/fleetdepot/depot/internal/repository"
)

var (
	ErrPartNumberExists = repository.ErrPartNumberExists
	ErrPartNotFound     = repository.ErrPartNotFound
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type PartRepository interface {
	Create(ctx context.Context, part domain.Part) (domain.Part, error)
	FindByID(ctx context.Context, id uint) (domain.Part, error)
	List(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error)
	Update(ctx context.Context, part domain.Part) (domain.Part, error)
}

type PartStockRepository interface {
	PartStock(ctx context.Context, partID uint) (domain.PartStock, error)
}

type PartService struct {
	repo  PartRepository
	stock PartStockRepository
	cache StockCache
}

func NewPartService(repo PartRepository, stock PartStockRepository, cache StockCache) *PartService {
	return &PartService{
		repo:  repo,
		stock: stock,
		cache: cache,
	}
}

func (s *PartService) CreatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	part.PartNumber = codes.Normalize(part.PartNumber)
	if part.UOM == "" {
		part.UOM = "EA"
	}

	created, err := s.repo.Create(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PartService) GetPart(ctx context.Context, id uint) (domain.Part, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return part, nil
}

func (s *PartService) ListParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	filter.Limit = clampLimit(filter.Limit)

	parts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return parts, nil
}

func (s *PartService) UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	part.PartNumber = codes.Normalize(part.PartNumber)

	updated, err := s.repo.Update(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// GetStock returns on-hand stock for a part, served from the cache when present.
func (s *PartService) GetStock(ctx context.Context, partID uint) (domain.PartStock, error) {
	if stock, ok := s.cache.Get(ctx, partID); ok {
		return stock, nil
	}

	if _, err := s.repo.FindByID(ctx, partID); err != nil {
		return domain.PartStock{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	stock, err := s.stock.PartStock(ctx, partID)
	if err != nil {
		return domain.PartStock{}, fmt.Errorf("s.stock.PartStock -> %w", err)
	}
	s.cache.Set(ctx, stock)

	return stock, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}

	return limit
}
