package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrInsufficientStock = dao.ErrInsufficientStock
	ErrBinStockNotFound  = dao.ErrBinStockNotFound
)

type StockDAO interface {
	PartStock(ctx context.Context, partID uint) ([]dao.BinStockView, error)
	Movements(ctx context.Context, partID uint, from, to time.Time, limit int) ([]dao.StockMovement, error)
	Transfer(ctx context.Context, partID uint, batch string, fromBinID, toBinID uint, qty int, userID uint) (dao.BinStock, dao.BinStock, error)
}

type StockRepository struct {
	dao StockDAO
}

func NewStockRepository(dao StockDAO) *StockRepository {
	return &StockRepository{
		dao: dao,
	}
}

func (r *StockRepository) PartStock(ctx context.Context, partID uint) (domain.PartStock, error) {
	rows, err := r.dao.PartStock(ctx, partID)
	if err != nil {
		return domain.PartStock{}, fmt.Errorf("r.dao.PartStock -> %w", err)
	}

	stock := domain.PartStock{PartID: partID, Bins: binStockViewsToDomain(rows)}
	for _, b := range stock.Bins {
		stock.Total += b.QtyOnHand
	}

	return stock, nil
}

func (r *StockRepository) Movements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error) {
	rows, err := r.dao.Movements(ctx, filter.PartID, filter.From, filter.To, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Movements -> %w", err)
	}

	movements := make([]domain.StockMovement, 0, len(rows))
	for _, m := range rows {
		movements = append(movements, movementDAOToDomain(m))
	}

	return movements, nil
}

func (r *StockRepository) Transfer(ctx context.Context, t domain.Transfer) (domain.BinStock, domain.BinStock, error) {
	from, to, err := r.dao.Transfer(ctx, t.PartID, t.BatchNumber, t.FromBinID, t.ToBinID, t.Qty, t.CreatedBy)
	if err != nil {
		return domain.BinStock{}, domain.BinStock{}, fmt.Errorf("r.dao.Transfer -> %w", err)
	}

	return binStockDAOToDomain(from), binStockDAOToDomain(to), nil
}

func binStockDAOToDomain(s dao.BinStock) domain.BinStock {
	return domain.BinStock{
		ID:          s.ID,
		PartID:      s.PartID,
		BinID:       s.BinID,
		BatchNumber: s.BatchNumber,
		ReceivedAt:  s.ReceivedAt,
		QtyOnHand:   s.QtyOnHand,
	}
}

func binStockViewsToDomain(rows []dao.BinStockView) []domain.BinStock {
	stock := make([]domain.BinStock, 0, len(rows))
	for _, row := range rows {
		s := binStockDAOToDomain(row.BinStock)
		s.PartNumber = row.PartNumber
		s.BinCode = row.BinCode
		s.Warehouse = row.Warehouse
		stock = append(stock, s)
	}

	return stock
}

func movementDAOToDomain(m dao.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		ID:            m.ID,
		PartID:        m.PartID,
		BinID:         m.BinID,
		BatchNumber:   m.BatchNumber,
		Qty:           m.Qty,
		Type:          m.MovementType,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     valueID(m.CreatedBy),
		CreatedAt:     m.CreatedAt,
	}
}

func fifoPicksToDomain(partID uint, source string, picks []dao.FIFOPick) []domain.Pick {
	out := make([]domain.Pick, 0, len(picks))
	for _, p := range picks {
		out = append(out, domain.Pick{
			PartID:      partID,
			BinID:       p.BinID,
			BinCode:     p.BinCode,
			BatchNumber: p.BatchNumber,
			ReceivedAt:  p.ReceivedAt,
			Qty:         p.Qty,
			Source:      source,
		})
	}

	return out
}
