package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

type ReportDAO interface {
	StockOnHand(ctx context.Context, warehouse string) ([]dao.StockOnHandRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) StockOnHand(ctx context.Context, warehouse string) ([]domain.StockOnHandRow, error) {
	found, err := r.dao.StockOnHand(ctx, warehouse)
	if err != nil {
		return nil, fmt.Errorf("r.dao.StockOnHand -> %w", err)
	}

	rows := make([]domain.StockOnHandRow, 0, len(found))
	for _, f := range found {
		rows = append(rows, domain.StockOnHandRow(f))
	}

	return rows, nil
}
