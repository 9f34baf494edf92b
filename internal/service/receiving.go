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
	ErrReceiptNotFound       = repository.ErrReceiptNotFound
	ErrReceiptLineNotFound   = repository.ErrReceiptLineNotFound
	ErrReceiptNotOpen        = repository.ErrReceiptNotOpen
	ErrReceiptHasAllocations = repository.ErrReceiptHasAllocations
	ErrOverAllocation        = repository.ErrOverAllocation
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error)
	FindByID(ctx context.Context, id uint) (domain.Receipt, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error)
	Cancel(ctx context.Context, id uint) (domain.Receipt, error)
	Allocate(ctx context.Context, id uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error)
}

type ReceivingService struct {
	repo ReceiptRepository
	notifier
}

func NewReceivingService(repo ReceiptRepository, pub Publisher, cache StockCache) *ReceivingService {
	return &ReceivingService{
		repo:     repo,
		notifier: notifier{pub: pub, cache: cache},
	}
}

func (s *ReceivingService) CreateReceipt(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	receipt.ReceiptNumber = codes.NewDocumentNumber(codes.PrefixReceipt)
	if receipt.ReceivedAt.IsZero() {
		receipt.ReceivedAt = time.Now().UTC()
	}
	for i := range receipt.Lines {
		receipt.Lines[i].BatchNumber = codes.Normalize(receipt.Lines[i].BatchNumber)
	}

	created, err := s.repo.Create(ctx, receipt)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ReceivingService) GetReceipt(ctx context.Context, id uint) (domain.Receipt, error) {
	receipt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return receipt, nil
}

func (s *ReceivingService) ListReceipts(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error) {
	receipts, err := s.repo.List(ctx, status, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return receipts, nil
}

func (s *ReceivingService) CancelReceipt(ctx context.Context, id uint) (domain.Receipt, error) {
	receipt, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return receipt, nil
}

// Allocate places received quantities into bins in one transaction.
func (s *ReceivingService) Allocate(ctx context.Context, receiptID uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error) {
	result, err := s.repo.Allocate(ctx, receiptID, allocations, userID)
	if err != nil {
		return domain.AllocationResult{}, fmt.Errorf("s.repo.Allocate -> %w", err)
	}

	lines := make(map[uint]domain.ReceiptLine, len(result.Receipt.Lines))
	for _, l := range result.Receipt.Lines {
		lines[l.ID] = l
	}

	now := time.Now().UTC()
	events := make([]domain.StockEvent, 0, len(allocations))
	for _, a := range allocations {
		events = append(events, domain.StockEvent{
			Type:      domain.EventReceived,
			PartID:    lines[a.LineID].PartID,
			BinID:     a.BinID,
			Qty:       a.Qty,
			Reference: result.Receipt.ReceiptNumber,
			At:        now,
		})
	}
	s.committed(ctx, events)

	return result, nil
}
