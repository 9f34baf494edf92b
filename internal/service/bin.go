package service

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/codes"
	"github.com/fleetdepot/depot/internal/repository"
)

var (
	ErrBinCodeExists       = repository.ErrBinCodeExists
	ErrBinNotFound         = repository.ErrBinNotFound
	ErrBinInactive         = repository.ErrBinInactive
	ErrBinHasStock         = repository.ErrBinHasStock
	ErrBinCapacityExceeded = repository.ErrBinCapacityExceeded
)

type BinRepository interface {
	Create(ctx context.Context, bin domain.Bin) (domain.Bin, error)
	CreateMissing(ctx context.Context, bins []domain.Bin) (int, error)
	FindByID(ctx context.Context, id uint) (domain.Bin, error)
	List(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error)
	Update(ctx context.Context, id uint, update domain.BinUpdate) (domain.Bin, error)
	Stock(ctx context.Context, binID uint) ([]domain.BinStock, error)
}

type BinService struct {
	repo BinRepository
}

func NewBinService(repo BinRepository) *BinService {
	return &BinService{
		repo: repo,
	}
}

func (s *BinService) CreateBin(ctx context.Context, bin domain.Bin) (domain.Bin, error) {
	created, err := s.repo.Create(ctx, normalizeBin(bin))
	if err != nil {
		return domain.Bin{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CreateMissingBins inserts the bins whose warehouse and code are not yet taken
// and reports how many were created.
func (s *BinService) CreateMissingBins(ctx context.Context, bins []domain.Bin) (int, error) {
	normalized := make([]domain.Bin, 0, len(bins))
	for _, b := range bins {
		normalized = append(normalized, normalizeBin(b))
	}

	created, err := s.repo.CreateMissing(ctx, normalized)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CreateMissing -> %w", err)
	}

	return created, nil
}

func (s *BinService) GetBin(ctx context.Context, id uint) (domain.Bin, error) {
	bin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Bin{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return bin, nil
}

func (s *BinService) ListBins(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error) {
	filter.Warehouse = codes.Normalize(filter.Warehouse)
	filter.Section = codes.Normalize(filter.Section)

	bins, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return bins, nil
}

func (s *BinService) UpdateBin(ctx context.Context, id uint, update domain.BinUpdate) (domain.Bin, error) {
	bin, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Bin{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return bin, nil
}

func (s *BinService) GetBinStock(ctx context.Context, id uint) ([]domain.BinStock, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	stock, err := s.repo.Stock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Stock -> %w", err)
	}

	return stock, nil
}

func normalizeBin(b domain.Bin) domain.Bin {
	b.Warehouse = codes.Normalize(b.Warehouse)
	b.Section = codes.Normalize(b.Section)
	b.SubSection = codes.Normalize(b.SubSection)
	b.Label = codes.Normalize(b.Label)
	b.Code = domain.BinCode(b.Section, b.SubSection, b.Label)
	b.Active = true

	return b
}
