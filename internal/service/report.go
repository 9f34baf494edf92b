package service

import (
	"context"
	"fmt"
	"io"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/export"
	"github.com/fleetdepot/depot/internal/pkg/codes"
)

type ReportRepository interface {
	StockOnHand(ctx context.Context, warehouse string) ([]domain.StockOnHandRow, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) StockOnHand(ctx context.Context, warehouse string) ([]domain.StockOnHandRow, error) {
	rows, err := s.repo.StockOnHand(ctx, codes.Normalize(warehouse))
	if err != nil {
		return nil, fmt.Errorf("s.repo.StockOnHand -> %w", err)
	}

	return rows, nil
}

// WriteStockOnHandXLSX writes the stock-on-hand report as an Excel workbook.
func (s *ReportService) WriteStockOnHandXLSX(ctx context.Context, w io.Writer, warehouse string) error {
	rows, err := s.StockOnHand(ctx, warehouse)
	if err != nil {
		return err
	}

	if err = export.StockOnHand(w, rows); err != nil {
		return fmt.Errorf("export.StockOnHand -> %w", err)
	}

	return nil
}
