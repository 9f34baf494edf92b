package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BinStock struct {
	ID          uint `gorm:"primaryKey"`
	PartID      uint
	BinID       uint
	BatchNumber string
	ReceivedAt  time.Time
	QtyOnHand   int
	UpdatedAt   time.Time
}

type BinStockView struct {
	BinStock
	PartNumber string
	BinCode    string
	Warehouse  string
}

type StockMovement struct {
	ID            uint `gorm:"primaryKey"`
	PartID        uint
	BinID         uint
	BatchNumber   string
	Qty           int
	MovementType  string
	ReferenceType string
	ReferenceID   uint
	CreatedBy     *uint
	CreatedAt     time.Time
}

// FIFOPick is a quantity to take from one bin_stocks row.
type FIFOPick struct {
	BinStockID  uint
	BinID       uint
	BinCode     string
	BatchNumber string
	ReceivedAt  time.Time
	Qty         int
}

const (
	movementReceive     = "receive"
	movementIssue       = "issue"
	movementHold        = "hold"
	movementRelease     = "release"
	movementTransferOut = "transfer_out"
	movementTransferIn  = "transfer_in"

	refReceipt  = "receipt"
	refPickslip = "pickslip"
	refHolding  = "holding"
	refTransfer = "transfer"
)

const binStockViewSQL = `
		SELECT bs.*, p.part_number, b.code AS bin_code, b.warehouse
		FROM bin_stocks bs
		JOIN parts p ON p.id = bs.part_id
		JOIN bins b ON b.id = bs.bin_id`

// fifoPlanSQL walks a part's stock oldest first. running_total - qty_on_hand is
// what earlier rows already cover, so a row contributes only while that is
// below the requested quantity, and the last row contributes the remainder.
const fifoPlanSQL = `
WITH ranked AS (
	SELECT bs.id, bs.bin_id, b.code AS bin_code, bs.batch_number, bs.received_at, bs.qty_on_hand,
	       SUM(bs.qty_on_hand) OVER (
	           PARTITION BY bs.part_id
	           ORDER BY bs.received_at, bs.batch_number, b.code, bs.id
	       ) AS running_total
	FROM bin_stocks bs
	JOIN bins b ON b.id = bs.bin_id
	WHERE bs.part_id = @part_id AND bs.qty_on_hand > 0
)
SELECT id AS bin_stock_id, bin_id, bin_code, batch_number, received_at,
       LEAST(qty_on_hand, @qty - (running_total - qty_on_hand)) AS qty
FROM ranked
WHERE running_total - qty_on_hand < @qty
ORDER BY received_at, batch_number, bin_code, id`

func planFIFO(tx *gorm.DB, partID uint, qty int) ([]FIFOPick, error) {
	var picks []FIFOPick
	err := tx.Raw(fifoPlanSQL, map[string]interface{}{"part_id": partID, "qty": qty}).Scan(&picks).Error
	if err != nil {
		return nil, fmt.Errorf("planFIFO -> %w", err)
	}

	return picks, nil
}

// takeFIFO locks the part's stock rows in id order, plans the FIFO picks for qty and
// decrements them. It fails without writing when the plan comes up short.
func takeFIFO(tx *gorm.DB, partID uint, qty int) ([]FIFOPick, error) {
	var locked []BinStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("part_id = ? AND qty_on_hand > 0", partID).
		Order("id").
		Find(&locked).Error
	if err != nil {
		return nil, fmt.Errorf("takeFIFO lock -> %w", err)
	}

	picks, err := planFIFO(tx, partID, qty)
	if err != nil {
		return nil, err
	}
	if sumPicks(picks) < qty {
		return nil, fmt.Errorf("part %d: %w", partID, ErrInsufficientStock)
	}

	for _, p := range picks {
		result := tx.Model(&BinStock{}).
			Where("id = ? AND qty_on_hand >= ?", p.BinStockID, p.Qty).
			Updates(map[string]interface{}{
				"qty_on_hand": gorm.Expr("qty_on_hand - ?", p.Qty),
				"updated_at":  gorm.Expr("NOW()"),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("part %d: %w", partID, ErrInsufficientStock)
		}
	}

	return picks, nil
}

func sumPicks(picks []FIFOPick) int {
	total := 0
	for _, p := range picks {
		total += p.Qty
	}

	return total
}

// lockBin locks the bin row and returns it with the bin's on-hand total.
func lockBin(tx *gorm.DB, binID uint) (Bin, int, error) {
	var bin Bin
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bin, binID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Bin{}, 0, ErrBinNotFound
		}

		return Bin{}, 0, err
	}

	var onHand int
	err = tx.Model(&BinStock{}).
		Select("COALESCE(SUM(qty_on_hand), 0)").
		Where("bin_id = ?", binID).
		Scan(&onHand).Error
	if err != nil {
		return Bin{}, 0, err
	}

	return bin, onHand, nil
}

// stockIn adds s.QtyOnHand to the bin/batch row, creating it when missing. The
// older received_at wins so FIFO age survives merges. With enforce, the bin must
// be active and have room for the quantity.
func stockIn(tx *gorm.DB, s BinStock, enforce bool) (BinStock, error) {
	bin, onHand, err := lockBin(tx, s.BinID)
	if err != nil {
		return BinStock{}, err
	}
	if enforce {
		if !bin.Active {
			return BinStock{}, fmt.Errorf("bin %s: %w", bin.Code, ErrBinInactive)
		}
		if bin.Capacity > 0 && onHand+s.QtyOnHand > bin.Capacity {
			return BinStock{}, fmt.Errorf("bin %s: %w", bin.Code, ErrBinCapacityExceeded)
		}
	}

	row := BinStock{
		PartID:      s.PartID,
		BinID:       s.BinID,
		BatchNumber: s.BatchNumber,
		ReceivedAt:  s.ReceivedAt,
		QtyOnHand:   s.QtyOnHand,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "part_id"}, {Name: "bin_id"}, {Name: "batch_number"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qty_on_hand": gorm.Expr("bin_stocks.qty_on_hand + EXCLUDED.qty_on_hand"),
			"received_at": gorm.Expr("LEAST(bin_stocks.received_at, EXCLUDED.received_at)"),
			"updated_at":  gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
	if err != nil {
		if isForeignKeyViolation(err, "part_id") {
			return BinStock{}, ErrPartNotFound
		}

		return BinStock{}, err
	}

	var stored BinStock
	err = tx.Where("part_id = ? AND bin_id = ? AND batch_number = ?", s.PartID, s.BinID, s.BatchNumber).
		Take(&stored).Error
	if err != nil {
		return BinStock{}, err
	}

	return stored, nil
}

func insertMovements(tx *gorm.DB, movements []StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	return tx.Create(&movements).Error
}

type StockDAO struct {
	db *gorm.DB
}

func NewStockDAO(db *gorm.DB) *StockDAO {
	return &StockDAO{
		db: db,
	}
}

// PartStock lists the part's non-empty stock rows in FIFO order.
func (d *StockDAO) PartStock(ctx context.Context, partID uint) ([]BinStockView, error) {
	var rows []BinStockView
	err := d.db.WithContext(ctx).Raw(binStockViewSQL+`
		WHERE bs.part_id = ? AND bs.qty_on_hand > 0
		ORDER BY bs.received_at, bs.batch_number, b.code, bs.id`, partID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *StockDAO) Movements(ctx context.Context, partID uint, from, to time.Time, limit int) ([]StockMovement, error) {
	q := d.db.WithContext(ctx).Model(&StockMovement{})
	if partID != 0 {
		q = q.Where("part_id = ?", partID)
	}
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}

	var movements []StockMovement
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, err
	}

	return movements, nil
}

// Transfer moves qty of one part batch between bins in a single transaction.
// The destination keeps the source's received_at.
func (d *StockDAO) Transfer(ctx context.Context, partID uint, batch string, fromBinID, toBinID uint, qty int, userID uint) (BinStock, BinStock, error) {
	var from, to BinStock
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("part_id = ? AND bin_id = ? AND batch_number = ?", partID, fromBinID, batch).
			Take(&from).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBinStockNotFound
			}

			return err
		}
		if from.QtyOnHand < qty {
			return fmt.Errorf("part %d: %w", partID, ErrInsufficientStock)
		}

		err = tx.Model(&from).Updates(map[string]interface{}{
			"qty_on_hand": gorm.Expr("qty_on_hand - ?", qty),
			"updated_at":  gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}
		from.QtyOnHand -= qty

		to, err = stockIn(tx, BinStock{
			PartID:      partID,
			BinID:       toBinID,
			BatchNumber: batch,
			ReceivedAt:  from.ReceivedAt,
			QtyOnHand:   qty,
		}, true)
		if err != nil {
			return err
		}

		return insertMovements(tx, []StockMovement{
			{PartID: partID, BinID: fromBinID, BatchNumber: batch, Qty: qty, MovementType: movementTransferOut,
				ReferenceType: refTransfer, ReferenceID: to.ID, CreatedBy: nullableID(userID)},
			{PartID: partID, BinID: toBinID, BatchNumber: batch, Qty: qty, MovementType: movementTransferIn,
				ReferenceType: refTransfer, ReferenceID: from.ID, CreatedBy: nullableID(userID)},
		})
	})
	if err != nil {
		return BinStock{}, BinStock{}, err
	}

	return from, to, nil
}
