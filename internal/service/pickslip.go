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
	ErrPickslipNotFound       = repository.ErrPickslipNotFound
	ErrPickslipNotOpen        = repository.ErrPickslipNotOpen
	ErrPartNotOnPickslip      = repository.ErrPartNotOnPickslip
	ErrHoldExceedsOutstanding = repository.ErrHoldExceedsOutstanding
	ErrHoldingNotFound        = repository.ErrHoldingNotFound
	ErrHoldingNotHeld         = repository.ErrHoldingNotHeld
	ErrHoldingQtyExceeded     = repository.ErrHoldingQtyExceeded
	ErrSamePickslip           = repository.ErrSamePickslip
	ErrInsufficientStock      = repository.ErrInsufficientStock
)

type PickslipRepository interface {
	Create(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error)
	FindByID(ctx context.Context, id uint) (domain.Pickslip, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error)
	SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error)
	Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error)
	Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, []domain.StockMovement, error)
	Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error)
	Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error)
	ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error)
	TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error)
}

type PickslipService struct {
	repo PickslipRepository
	notifier
}

func NewPickslipService(repo PickslipRepository, pub Publisher, cache StockCache) *PickslipService {
	return &PickslipService{
		repo:     repo,
		notifier: notifier{pub: pub, cache: cache},
	}
}

func (s *PickslipService) CreatePickslip(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error) {
	pickslip.PickslipNumber = codes.NewDocumentNumber(codes.PrefixPickslip)

	created, err := s.repo.Create(ctx, pickslip)
	if err != nil {
		return domain.Pickslip{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PickslipService) GetPickslip(ctx context.Context, id uint) (domain.Pickslip, error) {
	pickslip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Pickslip{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return pickslip, nil
}

func (s *PickslipService) ListPickslips(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error) {
	pickslips, err := s.repo.List(ctx, status, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return pickslips, nil
}

func (s *PickslipService) SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error) {
	suggestions, err := s.repo.SuggestPicks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SuggestPicks -> %w", err)
	}

	return suggestions, nil
}

// Complete issues every outstanding line, holdings first, then FIFO bin stock.
func (s *PickslipService) Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error) {
	completion, err := s.repo.Complete(ctx, id, userID)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("s.repo.Complete -> %w", err)
	}

	now := time.Now().UTC()
	events := make([]domain.StockEvent, 0, len(completion.Picks))
	for _, p := range completion.Picks {
		events = append(events, domain.StockEvent{
			Type:      domain.EventIssued,
			PartID:    p.PartID,
			BinID:     p.BinID,
			Qty:       p.Qty,
			Reference: completion.Pickslip.PickslipNumber,
			At:        now,
		})
	}
	s.committed(ctx, events)

	return completion, nil
}

func (s *PickslipService) Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, error) {
	pickslip, released, err := s.repo.Cancel(ctx, id, userID)
	if err != nil {
		return domain.Pickslip{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	s.committed(ctx, movementEvents(domain.EventReleased, pickslip.PickslipNumber, released))

	return pickslip, nil
}

func (s *PickslipService) Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error) {
	holdings, err := s.repo.Hold(ctx, pickslipID, partID, qty, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Hold -> %w", err)
	}

	now := time.Now().UTC()
	events := make([]domain.StockEvent, 0, len(holdings))
	for _, h := range holdings {
		events = append(events, holdingEvent(domain.EventHeld, h, now))
	}
	s.committed(ctx, events)

	return holdings, nil
}

func (s *PickslipService) Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error) {
	if _, err := s.repo.FindByID(ctx, pickslipID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	holdings, err := s.repo.Holdings(ctx, pickslipID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Holdings -> %w", err)
	}

	return holdings, nil
}

func (s *PickslipService) ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error) {
	holding, err := s.repo.ReleaseHolding(ctx, holdingID, userID)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("s.repo.ReleaseHolding -> %w", err)
	}

	s.committed(ctx, []domain.StockEvent{holdingEvent(domain.EventReleased, holding, time.Now().UTC())})

	return holding, nil
}

// TransferHolding moves qty of a held quantity to another open pickslip.
// It returns the remaining source holding and the holding now on the target.
func (s *PickslipService) TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error) {
	source, moved, err := s.repo.TransferHolding(ctx, holdingID, targetPickslipID, qty)
	if err != nil {
		return domain.Holding{}, domain.Holding{}, fmt.Errorf("s.repo.TransferHolding -> %w", err)
	}

	s.committed(ctx, []domain.StockEvent{holdingEvent(domain.EventHoldMoved, moved, time.Now().UTC())})

	return source, moved, nil
}

func holdingEvent(eventType string, h domain.Holding, at time.Time) domain.StockEvent {
	return domain.StockEvent{
		Type:      eventType,
		PartID:    h.PartID,
		BinID:     h.BinID,
		Qty:       h.Qty,
		Reference: fmt.Sprintf("holding:%d", h.ID),
		At:        at,
	}
}

func movementEvents(eventType, reference string, movements []domain.StockMovement) []domain.StockEvent {
	events := make([]domain.StockEvent, 0, len(movements))
	for _, m := range movements {
		events = append(events, domain.StockEvent{
			Type:      eventType,
			PartID:    m.PartID,
			BinID:     m.BinID,
			Qty:       m.Qty,
			Reference: reference,
			At:        m.CreatedAt,
		})
	}

	return events
}
