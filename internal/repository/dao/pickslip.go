package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pickslipOpen      = "open"
	pickslipCompleted = "completed"
	pickslipCancelled = "cancelled"

	holdingHeld     = "held"
	holdingIssued   = "issued"
	holdingReleased = "released"
)

type Pickslip struct {
	ID             uint `gorm:"primaryKey"`
	PickslipNumber string
	Customer       string
	OrderReference string
	Status         string
	CompletedAt    *time.Time
	CreatedBy      *uint
	Lines          []PickslipLine `gorm:"foreignKey:PickslipID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PickslipLine struct {
	ID           uint `gorm:"primaryKey"`
	PickslipID   uint
	PartID       uint
	QtyRequested int
	QtyIssued    int
}

type Holding struct {
	ID          uint `gorm:"primaryKey"`
	PickslipID  uint
	PartID      uint
	BinID       uint
	BatchNumber string
	ReceivedAt  time.Time
	Qty         int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type HoldingView struct {
	Holding
	BinCode string
}

// IssuedPick is one quantity handed out by Complete. HoldingID is set when it
// came from a holding rather than straight from a bin.
type IssuedPick struct {
	FIFOPick
	PartID    uint
	HoldingID uint
}

// LineSuggestion is the read-only pick plan for one pickslip line.
type LineSuggestion struct {
	Line     PickslipLine
	Holdings []HoldingView
	Bins     []FIFOPick
}

const holdingViewSQL = `
	SELECT h.*, b.code AS bin_code
	FROM holdings h
	JOIN bins b ON b.id = h.bin_id`

type PickslipDAO struct {
	db *gorm.DB
}

func NewPickslipDAO(db *gorm.DB) *PickslipDAO {
	return &PickslipDAO{
		db: db,
	}
}

func (d *PickslipDAO) Insert(ctx context.Context, pickslip Pickslip) (Pickslip, error) {
	pickslip.Status = pickslipOpen
	if err := d.db.WithContext(ctx).Create(&pickslip).Error; err != nil {
		if isForeignKeyViolation(err, "part_id") {
			return Pickslip{}, ErrPartNotFound
		}

		return Pickslip{}, err
	}

	return pickslip, nil
}

func (d *PickslipDAO) FindByID(ctx context.Context, id uint) (Pickslip, error) {
	return findPickslip(d.db.WithContext(ctx), id)
}

func findPickslip(tx *gorm.DB, id uint) (Pickslip, error) {
	var pickslip Pickslip
	err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("pickslip_lines.id")
	}).First(&pickslip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Pickslip{}, ErrPickslipNotFound
		}

		return Pickslip{}, err
	}

	return pickslip, nil
}

func (d *PickslipDAO) List(ctx context.Context, status string, limit, offset int) ([]Pickslip, error) {
	q := d.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("pickslip_lines.id")
	})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var pickslips []Pickslip
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&pickslips).Error; err != nil {
		return nil, err
	}

	return pickslips, nil
}

// SuggestPicks plans each open line without locking or writing: the
// pickslip's own holdings first, then FIFO bin stock for the rest.
func (d *PickslipDAO) SuggestPicks(ctx context.Context, id uint) ([]LineSuggestion, error) {
	db := d.db.WithContext(ctx)
	pickslip, err := findPickslip(db, id)
	if err != nil {
		return nil, err
	}

	suggestions := make([]LineSuggestion, 0, len(pickslip.Lines))
	for _, line := range pickslip.Lines {
		s := LineSuggestion{Line: line}
		remaining := line.QtyRequested - line.QtyIssued
		if remaining <= 0 || pickslip.Status != pickslipOpen {
			suggestions = append(suggestions, s)
			continue
		}

		err = db.Raw(holdingViewSQL+`
			WHERE h.pickslip_id = ? AND h.part_id = ? AND h.status = ?
			ORDER BY h.received_at, h.batch_number, b.code, h.id`, id, line.PartID, holdingHeld).
			Scan(&s.Holdings).Error
		if err != nil {
			return nil, err
		}
		for _, h := range s.Holdings {
			remaining -= h.Qty
		}

		if remaining > 0 {
			if s.Bins, err = planFIFO(db, line.PartID, remaining); err != nil {
				return nil, err
			}
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, nil
}

// Complete issues every outstanding line of an open pickslip in one
// transaction. Each line draws on the pickslip's holdings first and then on
// FIFO bin stock; any shortfall rolls the whole completion back. Held stock
// left over after issuing goes back to its origin bins.
func (d *PickslipDAO) Complete(ctx context.Context, id uint, userID uint) (Pickslip, []IssuedPick, error) {
	var (
		pickslip Pickslip
		issued   []IssuedPick
	)
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockOpenPickslip(tx, id)
		if err != nil {
			return err
		}

		var lines []PickslipLine
		if err = tx.Where("pickslip_id = ?", id).Order("id").Find(&lines).Error; err != nil {
			return err
		}

		var movements []StockMovement
		for _, line := range lines {
			remaining := line.QtyRequested - line.QtyIssued
			if remaining <= 0 {
				continue
			}

			held, err := lockHeld(tx, id, line.PartID)
			if err != nil {
				return err
			}
			for _, h := range held {
				if remaining == 0 {
					break
				}
				take := min(h.Qty, remaining)
				if err = issueHolding(tx, h.Holding, take); err != nil {
					return err
				}
				issued = append(issued, IssuedPick{
					FIFOPick: FIFOPick{
						BinID:       h.BinID,
						BinCode:     h.BinCode,
						BatchNumber: h.BatchNumber,
						ReceivedAt:  h.ReceivedAt,
						Qty:         take,
					},
					PartID:    line.PartID,
					HoldingID: h.ID,
				})
				movements = append(movements, StockMovement{
					PartID: line.PartID, BinID: h.BinID, BatchNumber: h.BatchNumber, Qty: take,
					MovementType: movementIssue, ReferenceType: refHolding, ReferenceID: h.ID, CreatedBy: nullableID(userID),
				})
				remaining -= take
			}

			if remaining > 0 {
				picks, err := takeFIFO(tx, line.PartID, remaining)
				if err != nil {
					return err
				}
				for _, p := range picks {
					issued = append(issued, IssuedPick{FIFOPick: p, PartID: line.PartID})
					movements = append(movements, StockMovement{
						PartID: line.PartID, BinID: p.BinID, BatchNumber: p.BatchNumber, Qty: p.Qty,
						MovementType: movementIssue, ReferenceType: refPickslip, ReferenceID: id, CreatedBy: nullableID(userID),
					})
				}
			}

			err = tx.Model(&PickslipLine{}).Where("id = ?", line.ID).
				Update("qty_issued", line.QtyRequested).Error
			if err != nil {
				return err
			}
		}

		released, err := releaseAllHeld(tx, id, userID)
		if err != nil {
			return err
		}
		movements = append(movements, released...)
		if err = insertMovements(tx, movements); err != nil {
			return err
		}

		err = tx.Model(&locked).Updates(map[string]interface{}{
			"status":       pickslipCompleted,
			"completed_at": gorm.Expr("NOW()"),
			"updated_at":   gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}

		pickslip, err = findPickslip(tx, id)
		return err
	})
	if err != nil {
		return Pickslip{}, nil, err
	}

	return pickslip, issued, nil
}

// Cancel closes an open pickslip and returns all of its held stock to the origin bins.
func (d *PickslipDAO) Cancel(ctx context.Context, id uint, userID uint) (Pickslip, []StockMovement, error) {
	var (
		pickslip Pickslip
		released []StockMovement
	)
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockOpenPickslip(tx, id)
		if err != nil {
			return err
		}

		if released, err = releaseAllHeld(tx, id, userID); err != nil {
			return err
		}
		if err = insertMovements(tx, released); err != nil {
			return err
		}

		err = tx.Model(&locked).Updates(map[string]interface{}{
			"status":     pickslipCancelled,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}

		pickslip, err = findPickslip(tx, id)
		return err
	})
	if err != nil {
		return Pickslip{}, nil, err
	}

	return pickslip, released, nil
}

// Hold reserves qty of a part for the pickslip by taking it from bins in FIFO
// order. The pickslip's holdings for the part may not exceed what is still
// outstanding on its line.
func (d *PickslipDAO) Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]HoldingView, error) {
	var holdings []HoldingView
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOpenPickslip(tx, pickslipID); err != nil {
			return err
		}
		if err := checkHoldRoom(tx, pickslipID, partID, qty); err != nil {
			return err
		}

		picks, err := takeFIFO(tx, partID, qty)
		if err != nil {
			return err
		}

		movements := make([]StockMovement, 0, len(picks))
		for _, p := range picks {
			h := Holding{
				PickslipID:  pickslipID,
				PartID:      partID,
				BinID:       p.BinID,
				BatchNumber: p.BatchNumber,
				ReceivedAt:  p.ReceivedAt,
				Qty:         p.Qty,
				Status:      holdingHeld,
			}
			if err = tx.Create(&h).Error; err != nil {
				return err
			}
			holdings = append(holdings, HoldingView{Holding: h, BinCode: p.BinCode})
			movements = append(movements, StockMovement{
				PartID: partID, BinID: p.BinID, BatchNumber: p.BatchNumber, Qty: p.Qty,
				MovementType: movementHold, ReferenceType: refHolding, ReferenceID: h.ID, CreatedBy: nullableID(userID),
			})
		}

		return insertMovements(tx, movements)
	})
	if err != nil {
		return nil, err
	}

	return holdings, nil
}

func (d *PickslipDAO) Holdings(ctx context.Context, pickslipID uint) ([]HoldingView, error) {
	db := d.db.WithContext(ctx)
	if _, err := findPickslip(db, pickslipID); err != nil {
		return nil, err
	}

	var holdings []HoldingView
	err := db.Raw(holdingViewSQL+`
		WHERE h.pickslip_id = ?
		ORDER BY h.id`, pickslipID).Scan(&holdings).Error
	if err != nil {
		return nil, err
	}

	return holdings, nil
}

// ReleaseHolding puts a held quantity back into its origin bin.
func (d *PickslipDAO) ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (HoldingView, error) {
	var released HoldingView
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := lockHolding(tx, holdingID)
		if err != nil {
			return err
		}

		movement, err := releaseHolding(tx, h.Holding, userID)
		if err != nil {
			return err
		}
		if err = insertMovements(tx, []StockMovement{movement}); err != nil {
			return err
		}

		released = h
		released.Status = holdingReleased
		return nil
	})
	if err != nil {
		return HoldingView{}, err
	}

	return released, nil
}

// TransferHolding moves qty of a held quantity to another open pickslip,
// splitting the holding when only part of it moves.
func (d *PickslipDAO) TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (HoldingView, HoldingView, error) {
	var source, moved HoldingView
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := lockHolding(tx, holdingID)
		if err != nil {
			return err
		}
		if h.PickslipID == targetPickslipID {
			return ErrSamePickslip
		}
		if qty > h.Qty {
			return ErrHoldingQtyExceeded
		}

		if _, err = lockOpenPickslip(tx, targetPickslipID); err != nil {
			return err
		}
		if err = checkHoldRoom(tx, targetPickslipID, h.PartID, qty); err != nil {
			return err
		}

		source, moved = h, h
		if qty == h.Qty {
			err = tx.Model(&h.Holding).Updates(map[string]interface{}{
				"pickslip_id": targetPickslipID,
				"updated_at":  gorm.Expr("NOW()"),
			}).Error
			if err != nil {
				return err
			}
			source.Qty = 0
			moved.PickslipID = targetPickslipID
			return nil
		}

		err = tx.Model(&h.Holding).Updates(map[string]interface{}{
			"qty":        gorm.Expr("qty - ?", qty),
			"updated_at": gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}
		source.Qty -= qty

		split := h.Holding
		split.ID = 0
		split.PickslipID = targetPickslipID
		split.Qty = qty
		split.CreatedAt, split.UpdatedAt = time.Time{}, time.Time{}
		if err = tx.Create(&split).Error; err != nil {
			return err
		}
		moved = HoldingView{Holding: split, BinCode: h.BinCode}

		return nil
	})
	if err != nil {
		return HoldingView{}, HoldingView{}, err
	}

	return source, moved, nil
}

func lockOpenPickslip(tx *gorm.DB, id uint) (Pickslip, error) {
	var pickslip Pickslip
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pickslip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Pickslip{}, ErrPickslipNotFound
		}

		return Pickslip{}, err
	}
	if pickslip.Status != pickslipOpen {
		return Pickslip{}, ErrPickslipNotOpen
	}

	return pickslip, nil
}

func lockHolding(tx *gorm.DB, id uint) (HoldingView, error) {
	var holdings []HoldingView
	err := tx.Raw(holdingViewSQL+`
		WHERE h.id = ?
		FOR UPDATE OF h`, id).Scan(&holdings).Error
	if err != nil {
		return HoldingView{}, err
	}
	if len(holdings) == 0 {
		return HoldingView{}, ErrHoldingNotFound
	}
	if holdings[0].Status != holdingHeld {
		return HoldingView{}, ErrHoldingNotHeld
	}

	return holdings[0], nil
}

func lockHeld(tx *gorm.DB, pickslipID, partID uint) ([]HoldingView, error) {
	var held []HoldingView
	err := tx.Raw(holdingViewSQL+`
		WHERE h.pickslip_id = ? AND h.part_id = ? AND h.status = ?
		ORDER BY h.received_at, h.batch_number, b.code, h.id
		FOR UPDATE OF h`, pickslipID, partID, holdingHeld).Scan(&held).Error
	if err != nil {
		return nil, err
	}

	return held, nil
}

// checkHoldRoom fails unless the line for partID can take qty more held units.
func checkHoldRoom(tx *gorm.DB, pickslipID, partID uint, qty int) error {
	var line PickslipLine
	err := tx.Where("pickslip_id = ? AND part_id = ?", pickslipID, partID).Take(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartNotOnPickslip
		}

		return err
	}

	var held int
	err = tx.Model(&Holding{}).
		Select("COALESCE(SUM(qty), 0)").
		Where("pickslip_id = ? AND part_id = ? AND status = ?", pickslipID, partID, holdingHeld).
		Scan(&held).Error
	if err != nil {
		return err
	}
	if held+qty > line.QtyRequested-line.QtyIssued {
		return fmt.Errorf("part %d: %w", partID, ErrHoldExceedsOutstanding)
	}

	return nil
}

// issueHolding marks take units of h as issued, splitting off the remainder.
func issueHolding(tx *gorm.DB, h Holding, take int) error {
	if take == h.Qty {
		return tx.Model(&h).Updates(map[string]interface{}{
			"status":     holdingIssued,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	}

	err := tx.Model(&h).Updates(map[string]interface{}{
		"qty":        gorm.Expr("qty - ?", take),
		"updated_at": gorm.Expr("NOW()"),
	}).Error
	if err != nil {
		return err
	}

	part := h
	part.ID = 0
	part.Qty = take
	part.Status = holdingIssued
	part.CreatedAt, part.UpdatedAt = time.Time{}, time.Time{}

	return tx.Create(&part).Error
}

func releaseHolding(tx *gorm.DB, h Holding, userID uint) (StockMovement, error) {
	_, err := stockIn(tx, BinStock{
		PartID:      h.PartID,
		BinID:       h.BinID,
		BatchNumber: h.BatchNumber,
		ReceivedAt:  h.ReceivedAt,
		QtyOnHand:   h.Qty,
	}, false)
	if err != nil {
		return StockMovement{}, err
	}

	err = tx.Model(&h).Updates(map[string]interface{}{
		"status":     holdingReleased,
		"updated_at": gorm.Expr("NOW()"),
	}).Error
	if err != nil {
		return StockMovement{}, err
	}

	return StockMovement{
		PartID: h.PartID, BinID: h.BinID, BatchNumber: h.BatchNumber, Qty: h.Qty,
		MovementType: movementRelease, ReferenceType: refHolding, ReferenceID: h.ID, CreatedBy: nullableID(userID),
	}, nil
}

func releaseAllHeld(tx *gorm.DB, pickslipID uint, userID uint) ([]StockMovement, error) {
	var held []Holding
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pickslip_id = ? AND status = ?", pickslipID, holdingHeld).
		Order("id").
		Find(&held).Error
	if err != nil {
		return nil, err
	}

	movements := make([]StockMovement, 0, len(held))
	for _, h := range held {
		m, err := releaseHolding(tx, h, userID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	return movements, nil
}
