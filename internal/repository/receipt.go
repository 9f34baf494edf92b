package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrReceiptNotFound       = dao.ErrReceiptNotFound
	ErrReceiptLineNotFound   = dao.ErrReceiptLineNotFound
	ErrReceiptNotOpen        = dao.ErrReceiptNotOpen
	ErrReceiptHasAllocations = dao.ErrReceiptHasAllocations
	ErrOverAllocation        = dao.ErrOverAllocation
)

type ReceiptDAO interface {
	Insert(ctx context.Context, receipt dao.Receipt) (dao.Receipt, error)
	FindByID(ctx context.Context, id uint) (dao.Receipt, error)
	List(ctx context.Context, status string, limit, offset int) ([]dao.Receipt, error)
	Cancel(ctx context.Context, id uint) (dao.Receipt, error)
	Allocate(ctx context.Context, id uint, allocations []dao.Allocation, userID uint) (dao.Receipt, []dao.BinStock, error)
}

type ReceiptRepository struct {
	dao ReceiptDAO
}

func NewReceiptRepository(dao ReceiptDAO) *ReceiptRepository {
	return &ReceiptRepository{
		dao: dao,
	}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	lines := make([]dao.ReceiptLine, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		lines = append(lines, dao.ReceiptLine{
			PartID:      l.PartID,
			BatchNumber: l.BatchNumber,
			QtyReceived: l.QtyReceived,
			UnitCost:    l.UnitCost,
		})
	}

	created, err := r.dao.Insert(ctx, dao.Receipt{
		ReceiptNumber: receipt.ReceiptNumber,
		Supplier:      receipt.Supplier,
		Reference:     receipt.Reference,
		ReceivedAt:    receipt.ReceivedAt,
		CreatedBy:     optionalID(receipt.CreatedBy),
		Lines:         lines,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return receiptDAOToDomain(created), nil
}

func (r *ReceiptRepository) FindByID(ctx context.Context, id uint) (domain.Receipt, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return receiptDAOToDomain(found), nil
}

func (r *ReceiptRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error) {
	found, err := r.dao.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	receipts := make([]domain.Receipt, 0, len(found))
	for _, rc := range found {
		receipts = append(receipts, receiptDAOToDomain(rc))
	}

	return receipts, nil
}

func (r *ReceiptRepository) Cancel(ctx context.Context, id uint) (domain.Receipt, error) {
	cancelled, err := r.dao.Cancel(ctx, id)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return receiptDAOToDomain(cancelled), nil
}

func (r *ReceiptRepository) Allocate(ctx context.Context, id uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error) {
	rows := make([]dao.Allocation, 0, len(allocations))
	for _, a := range allocations {
		rows = append(rows, dao.Allocation{LineID: a.LineID, BinID: a.BinID, Qty: a.Qty})
	}

	receipt, stocked, err := r.dao.Allocate(ctx, id, rows, userID)
	if err != nil {
		return domain.AllocationResult{}, fmt.Errorf("r.dao.Allocate -> %w", err)
	}

	result := domain.AllocationResult{Receipt: receiptDAOToDomain(receipt)}
	for _, s := range stocked {
		result.Stock = append(result.Stock, binStockDAOToDomain(s))
	}

	return result, nil
}

func receiptDAOToDomain(r dao.Receipt) domain.Receipt {
	receipt := domain.Receipt{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		Supplier:      r.Supplier,
		Reference:     r.Reference,
		Status:        r.Status,
		ReceivedAt:    r.ReceivedAt,
		CreatedBy:     valueID(r.CreatedBy),
		Lines:         make([]domain.ReceiptLine, 0, len(r.Lines)),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, l := range r.Lines {
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			ID:           l.ID,
			ReceiptID:    l.ReceiptID,
			PartID:       l.PartID,
			BatchNumber:  l.BatchNumber,
			QtyReceived:  l.QtyReceived,
			QtyAllocated: l.QtyAllocated,
			UnitCost:     l.UnitCost,
		})
	}

	return receipt
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}

	return &id
}

func valueID(id *uint) uint {
	if id == nil {
		return 0
	}

	return *id
}
