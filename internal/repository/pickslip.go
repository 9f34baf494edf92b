package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrPickslipNotFound       = dao.ErrPickslipNotFound
	ErrPickslipNotOpen        = dao.ErrPickslipNotOpen
	ErrPartNotOnPickslip      = dao.ErrPartNotOnPickslip
	ErrHoldExceedsOutstanding = dao.ErrHoldExceedsOutstanding
	ErrHoldingNotFound        = dao.ErrHoldingNotFound
	ErrHoldingNotHeld         = dao.ErrHoldingNotHeld
	ErrHoldingQtyExceeded     = dao.ErrHoldingQtyExceeded
	ErrSamePickslip           = dao.ErrSamePickslip
)

type PickslipDAO interface {
	Insert(ctx context.Context, pickslip dao.Pickslip) (dao.Pickslip, error)
	FindByID(ctx context.Context, id uint) (dao.Pickslip, error)
	List(ctx context.Context, status string, limit, offset int) ([]dao.Pickslip, error)
	SuggestPicks(ctx context.Context, id uint) ([]dao.LineSuggestion, error)
	Complete(ctx context.Context, id uint, userID uint) (dao.Pickslip, []dao.IssuedPick, error)
	Cancel(ctx context.Context, id uint, userID uint) (dao.Pickslip, []dao.StockMovement, error)
	Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]dao.HoldingView, error)
	Holdings(ctx context.Context, pickslipID uint) ([]dao.HoldingView, error)
	ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (dao.HoldingView, error)
	TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (dao.HoldingView, dao.HoldingView, error)
}

type PickslipRepository struct {
	dao PickslipDAO
}

func NewPickslipRepository(dao PickslipDAO) *PickslipRepository {
	return &PickslipRepository{
		dao: dao,
	}
}

func (r *PickslipRepository) Create(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error) {
	lines := make([]dao.PickslipLine, 0, len(pickslip.Lines))
	for _, l := range pickslip.Lines {
		lines = append(lines, dao.PickslipLine{PartID: l.PartID, QtyRequested: l.QtyRequested})
	}

	created, err := r.dao.Insert(ctx, dao.Pickslip{
		PickslipNumber: pickslip.PickslipNumber,
		Customer:       pickslip.Customer,
		OrderReference: pickslip.OrderReference,
		CreatedBy:      optionalID(pickslip.CreatedBy),
		Lines:          lines,
	})
	if err != nil {
		return domain.Pickslip{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return pickslipDAOToDomain(created), nil
}

func (r *PickslipRepository) FindByID(ctx context.Context, id uint) (domain.Pickslip, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Pickslip{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return pickslipDAOToDomain(found), nil
}

func (r *PickslipRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error) {
	found, err := r.dao.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	pickslips := make([]domain.Pickslip, 0, len(found))
	for _, p := range found {
		pickslips = append(pickslips, pickslipDAOToDomain(p))
	}

	return pickslips, nil
}

func (r *PickslipRepository) SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error) {
	found, err := r.dao.SuggestPicks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SuggestPicks -> %w", err)
	}

	suggestions := make([]domain.PickSuggestion, 0, len(found))
	for _, s := range found {
		outstanding := s.Line.QtyRequested - s.Line.QtyIssued
		suggestion := domain.PickSuggestion{
			LineID:      s.Line.ID,
			PartID:      s.Line.PartID,
			Outstanding: outstanding,
			Picks:       make([]domain.Pick, 0, len(s.Holdings)+len(s.Bins)),
		}
		for _, h := range s.Holdings {
			suggestion.Picks = append(suggestion.Picks, holdingPick(h))
		}
		suggestion.Picks = append(suggestion.Picks, fifoPicksToDomain(s.Line.PartID, domain.PickSourceBin, s.Bins)...)

		planned := 0
		for _, p := range suggestion.Picks {
			planned += p.Qty
		}
		if planned < outstanding {
			suggestion.Shortfall = outstanding - planned
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func (r *PickslipRepository) Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error) {
	pickslip, issued, err := r.dao.Complete(ctx, id, userID)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("r.dao.Complete -> %w", err)
	}

	completion := domain.Completion{
		Pickslip: pickslipDAOToDomain(pickslip),
		Picks:    make([]domain.Pick, 0, len(issued)),
	}
	for _, p := range issued {
		pick := fifoPicksToDomain(p.PartID, domain.PickSourceBin, []dao.FIFOPick{p.FIFOPick})[0]
		if p.HoldingID != 0 {
			pick.Source = domain.PickSourceHolding
			pick.HoldingID = p.HoldingID
		}
		completion.Picks = append(completion.Picks, pick)
	}

	return completion, nil
}

func (r *PickslipRepository) Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, []domain.StockMovement, error) {
	pickslip, released, err := r.dao.Cancel(ctx, id, userID)
	if err != nil {
		return domain.Pickslip{}, nil, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	movements := make([]domain.StockMovement, 0, len(released))
	for _, m := range released {
		movements = append(movements, movementDAOToDomain(m))
	}

	return pickslipDAOToDomain(pickslip), movements, nil
}

func (r *PickslipRepository) Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error) {
	held, err := r.dao.Hold(ctx, pickslipID, partID, qty, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Hold -> %w", err)
	}

	return holdingsDAOToDomain(held), nil
}

func (r *PickslipRepository) Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error) {
	found, err := r.dao.Holdings(ctx, pickslipID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Holdings -> %w", err)
	}

	return holdingsDAOToDomain(found), nil
}

func (r *PickslipRepository) ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error) {
	released, err := r.dao.ReleaseHolding(ctx, holdingID, userID)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("r.dao.ReleaseHolding -> %w", err)
	}

	return holdingDAOToDomain(released), nil
}

func (r *PickslipRepository) TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error) {
	source, moved, err := r.dao.TransferHolding(ctx, holdingID, targetPickslipID, qty)
	if err != nil {
		return domain.Holding{}, domain.Holding{}, fmt.Errorf("r.dao.TransferHolding -> %w", err)
	}

	return holdingDAOToDomain(source), holdingDAOToDomain(moved), nil
}

func pickslipDAOToDomain(p dao.Pickslip) domain.Pickslip {
	pickslip := domain.Pickslip{
		ID:             p.ID,
		PickslipNumber: p.PickslipNumber,
		Customer:       p.Customer,
		OrderReference: p.OrderReference,
		Status:         p.Status,
		CompletedAt:    p.CompletedAt,
		CreatedBy:      valueID(p.CreatedBy),
		Lines:          make([]domain.PickslipLine, 0, len(p.Lines)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, l := range p.Lines {
		pickslip.Lines = append(pickslip.Lines, domain.PickslipLine{
			ID:           l.ID,
			PickslipID:   l.PickslipID,
			PartID:       l.PartID,
			QtyRequested: l.QtyRequested,
			QtyIssued:    l.QtyIssued,
		})
	}

	return pickslip
}

func holdingDAOToDomain(h dao.HoldingView) domain.Holding {
	return domain.Holding{
		ID:          h.ID,
		PickslipID:  h.PickslipID,
		PartID:      h.PartID,
		BinID:       h.BinID,
		BinCode:     h.BinCode,
		BatchNumber: h.BatchNumber,
		ReceivedAt:  h.ReceivedAt,
		Qty:         h.Qty,
		Status:      h.Status,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func holdingsDAOToDomain(rows []dao.HoldingView) []domain.Holding {
	holdings := make([]domain.Holding, 0, len(rows))
	for _, h := range rows {
		holdings = append(holdings, holdingDAOToDomain(h))
	}

	return holdings
}

func holdingPick(h dao.HoldingView) domain.Pick {
	return domain.Pick{
		PartID:      h.PartID,
		BinID:       h.BinID,
		BinCode:     h.BinCode,
		BatchNumber: h.BatchNumber,
		ReceivedAt:  h.ReceivedAt,
		Qty:         h.Qty,
		Source:      domain.PickSourceHolding,
		HoldingID:   h.ID,
	}
}
