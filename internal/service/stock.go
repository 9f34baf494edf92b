package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/pkg/codes"
	"github.com/fleetdepot/depot/internal/repository"
)

var (
	ErrBinStockNotFound = repository.ErrBinStockNotFound
)

type StockRepository interface {
	Movements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error)
	Transfer(ctx context.Context, t domain.Transfer) (domain.BinStock, domain.BinStock, error)
}

type StockService struct {
	repo StockRepository
	notifier
}

func NewStockService(repo StockRepository, pub Publisher, cache StockCache) *StockService {
	return &StockService{
		repo:     repo,
		notifier: notifier{pub: pub, cache: cache},
	}
}

func (s *StockService) Movements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error) {
	filter.Limit = clampLimit(filter.Limit)

	movements, err := s.repo.Movements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Movements -> %w", err)
	}

	return movements, nil
}

// Transfer moves qty of one batch between bins and returns both resulting rows.
func (s *StockService) Transfer(ctx context.Context, t domain.Transfer) (domain.BinStock, domain.BinStock, error) {
	t.BatchNumber = codes.Normalize(t.BatchNumber)

	from, to, err := s.repo.Transfer(ctx, t)
	if err != nil {
		return domain.BinStock{}, domain.BinStock{}, fmt.Errorf("s.repo.Transfer -> %w", err)
	}

	s.committed(ctx, []domain.StockEvent{{
		Type:      domain.EventTransferred,
		PartID:    t.PartID,
		BinID:     t.ToBinID,
		Qty:       t.Qty,
		Reference: fmt.Sprintf("bin:%d", t.FromBinID),
		At:        time.Now().UTC(),
	}})

	return from, to, nil
}
