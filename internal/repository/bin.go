package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrBinCodeExists       = dao.ErrBinCodeExists
	ErrBinNotFound         = dao.ErrBinNotFound
	ErrBinInactive         = dao.ErrBinInactive
	ErrBinHasStock         = dao.ErrBinHasStock
	ErrBinCapacityExceeded = dao.ErrBinCapacityExceeded
)

type BinDAO interface {
	Insert(ctx context.Context, bin dao.Bin) (dao.Bin, error)
	InsertMissing(ctx context.Context, bins []dao.Bin) (int, error)
	FindByID(ctx context.Context, id uint) (dao.BinWithStock, error)
	List(ctx context.Context, warehouse, section string) ([]dao.BinWithStock, error)
	Update(ctx context.Context, id uint, capacity *int, active *bool) (dao.BinWithStock, error)
	Stock(ctx context.Context, binID uint) ([]dao.BinStockView, error)
}

type BinRepository struct {
	dao BinDAO
}

func NewBinRepository(dao BinDAO) *BinRepository {
	return &BinRepository{
		dao: dao,
	}
}

func (r *BinRepository) Create(ctx context.Context, bin domain.Bin) (domain.Bin, error) {
	created, err := r.dao.Insert(ctx, binDomainToDAO(bin))
	if err != nil {
		return domain.Bin{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return binDAOToDomain(dao.BinWithStock{Bin: created}), nil
}

func (r *BinRepository) CreateMissing(ctx context.Context, bins []domain.Bin) (int, error) {
	rows := make([]dao.Bin, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, binDomainToDAO(b))
	}

	n, err := r.dao.InsertMissing(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("r.dao.InsertMissing -> %w", err)
	}

	return n, nil
}

func (r *BinRepository) FindByID(ctx context.Context, id uint) (domain.Bin, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Bin{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return binDAOToDomain(found), nil
}

func (r *BinRepository) List(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error) {
	found, err := r.dao.List(ctx, filter.Warehouse, filter.Section)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	bins := make([]domain.Bin, 0, len(found))
	for _, b := range found {
		bins = append(bins, binDAOToDomain(b))
	}

	return bins, nil
}

func (r *BinRepository) Update(ctx context.Context, id uint, update domain.BinUpdate) (domain.Bin, error) {
	updated, err := r.dao.Update(ctx, id, update.Capacity, update.Active)
	if err != nil {
		return domain.Bin{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return binDAOToDomain(updated), nil
}

func (r *BinRepository) Stock(ctx context.Context, binID uint) ([]domain.BinStock, error) {
	rows, err := r.dao.Stock(ctx, binID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Stock -> %w", err)
	}

	return binStockViewsToDomain(rows), nil
}

func binDomainToDAO(b domain.Bin) dao.Bin {
	return dao.Bin{
		ID:         b.ID,
		Warehouse:  b.Warehouse,
		Section:    b.Section,
		SubSection: b.SubSection,
		Label:      b.Label,
		Code:       b.Code,
		Capacity:   b.Capacity,
		Active:     b.Active,
	}
}

func binDAOToDomain(b dao.BinWithStock) domain.Bin {
	return domain.Bin{
		ID:         b.ID,
		Warehouse:  b.Warehouse,
		Section:    b.Section,
		SubSection: b.SubSection,
		Label:      b.Label,
		Code:       b.Code,
		Capacity:   b.Capacity,
		Active:     b.Active,
		OnHand:     b.OnHand,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
