package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	receiptOpen      = "open"
	receiptAllocated = "allocated"
	receiptCancelled = "cancelled"
)

type Receipt struct {
	ID            uint `gorm:"primaryKey"`
	ReceiptNumber string
	Supplier      string
	Reference     string
	Status        string
	ReceivedAt    time.Time
	CreatedBy     *uint
	Lines         []ReceiptLine `gorm:"foreignKey:ReceiptID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ReceiptLine struct {
	ID           uint `gorm:"primaryKey"`
	ReceiptID    uint
	PartID       uint
	BatchNumber  string
	QtyReceived  int
	QtyAllocated int
	UnitCost     decimal.Decimal `gorm:"type:numeric(14,4)"`
}

type Allocation struct {
	LineID uint
	BinID  uint
	Qty    int
}

type ReceiptDAO struct {
	db *gorm.DB
}

func NewReceiptDAO(db *gorm.DB) *ReceiptDAO {
	return &ReceiptDAO{
		db: db,
	}
}

func (d *ReceiptDAO) Insert(ctx context.Context, receipt Receipt) (Receipt, error) {
	receipt.Status = receiptOpen
	if err := d.db.WithContext(ctx).Create(&receipt).Error; err != nil {
		if isForeignKeyViolation(err, "part_id") {
			return Receipt{}, ErrPartNotFound
		}

		return Receipt{}, err
	}

	return receipt, nil
}

func (d *ReceiptDAO) FindByID(ctx context.Context, id uint) (Receipt, error) {
	return findReceipt(d.db.WithContext(ctx), id)
}

func findReceipt(tx *gorm.DB, id uint) (Receipt, error) {
	var receipt Receipt
	err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("receipt_lines.id")
	}).First(&receipt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Receipt{}, ErrReceiptNotFound
		}

		return Receipt{}, err
	}

	return receipt, nil
}

func (d *ReceiptDAO) List(ctx context.Context, status string, limit, offset int) ([]Receipt, error) {
	q := d.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("receipt_lines.id")
	})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var receipts []Receipt
	if err := q.Order("received_at DESC, id DESC").Limit(limit).Offset(offset).Find(&receipts).Error; err != nil {
		return nil, err
	}

	return receipts, nil
}

// Cancel closes an open receipt that has nothing allocated yet.
func (d *ReceiptDAO) Cancel(ctx context.Context, id uint) (Receipt, error) {
	var receipt Receipt
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockReceipt(tx, id)
		if err != nil {
			return err
		}
		if locked.Status != receiptOpen {
			return ErrReceiptNotOpen
		}

		var allocated int64
		err = tx.Model(&ReceiptLine{}).Where("receipt_id = ? AND qty_allocated > 0", id).Count(&allocated).Error
		if err != nil {
			return err
		}
		if allocated > 0 {
			return ErrReceiptHasAllocations
		}

		err = tx.Model(&locked).Updates(map[string]interface{}{
			"status":     receiptCancelled,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
		if err != nil {
			return err
		}

		receipt, err = findReceipt(tx, id)
		return err
	})
	if err != nil {
		return Receipt{}, err
	}

	return receipt, nil
}

// Allocate puts receipt line quantities into bins as one transaction. Each
// allocation raises qty_allocated only while it stays within qty_received, adds
// the stock to the bin under its capacity, and logs a receive movement. The
// receipt becomes allocated once every line is fully placed.
func (d *ReceiptDAO) Allocate(ctx context.Context, id uint, allocations []Allocation, userID uint) (Receipt, []BinStock, error) {
	var (
		receipt Receipt
		stocked []BinStock
	)
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockReceipt(tx, id)
		if err != nil {
			return err
		}
		if locked.Status != receiptOpen {
			return ErrReceiptNotOpen
		}

		movements := make([]StockMovement, 0, len(allocations))
		for _, a := range allocations {
			var line ReceiptLine
			err = tx.Where("id = ? AND receipt_id = ?", a.LineID, id).Take(&line).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("line %d: %w", a.LineID, ErrReceiptLineNotFound)
				}

				return err
			}

			result := tx.Model(&ReceiptLine{}).
				Where("id = ? AND receipt_id = ? AND qty_allocated + ? <= qty_received", a.LineID, id, a.Qty).
				Update("qty_allocated", gorm.Expr("qty_allocated + ?", a.Qty))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("line %d: %w", a.LineID, ErrOverAllocation)
			}

			stock, err := stockIn(tx, BinStock{
				PartID:      line.PartID,
				BinID:       a.BinID,
				BatchNumber: line.BatchNumber,
				ReceivedAt:  locked.ReceivedAt,
				QtyOnHand:   a.Qty,
			}, true)
			if err != nil {
				return err
			}
			stocked = append(stocked, stock)

			movements = append(movements, StockMovement{
				PartID:        line.PartID,
				BinID:         a.BinID,
				BatchNumber:   line.BatchNumber,
				Qty:           a.Qty,
				MovementType:  movementReceive,
				ReferenceType: refReceipt,
				ReferenceID:   id,
				CreatedBy:     nullableID(userID),
			})
		}
		if err = insertMovements(tx, movements); err != nil {
			return err
		}

		var outstanding int64
		err = tx.Model(&ReceiptLine{}).Where("receipt_id = ? AND qty_allocated < qty_received", id).Count(&outstanding).Error
		if err != nil {
			return err
		}
		if outstanding == 0 {
			err = tx.Model(&locked).Updates(map[string]interface{}{
				"status":     receiptAllocated,
				"updated_at": gorm.Expr("NOW()"),
			}).Error
			if err != nil {
				return err
			}
		}

		receipt, err = findReceipt(tx, id)
		return err
	})
	if err != nil {
		return Receipt{}, nil, err
	}

	return receipt, stocked, nil
}

func lockReceipt(tx *gorm.DB, id uint) (Receipt, error) {
	var receipt Receipt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&receipt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Receipt{}, ErrReceiptNotFound
		}

		return Receipt{}, err
	}

	return receipt, nil
}
