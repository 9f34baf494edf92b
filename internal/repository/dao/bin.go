package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Bin struct {
	ID         uint `gorm:"primaryKey"`
	Warehouse  string
	Section    string
	SubSection string
	Label      string `gorm:"column:bin"`
	Code       string
	Capacity   int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BinWithStock is a bin plus the sum of its bin_stocks rows.
type BinWithStock struct {
	Bin
	OnHand int
}

const binOnHandSelect = "bins.*, COALESCE((SELECT SUM(bs.qty_on_hand) FROM bin_stocks bs WHERE bs.bin_id = bins.id), 0) AS on_hand"

type BinDAO struct {
	db *gorm.DB
}

func NewBinDAO(db *gorm.DB) *BinDAO {
	return &BinDAO{
		db: db,
	}
}

func (d *BinDAO) Insert(ctx context.Context, bin Bin) (Bin, error) {
	if err := d.db.WithContext(ctx).Create(&bin).Error; err != nil {
		if isUniqueViolation(err, "uni_bins_warehouse_code") {
			return Bin{}, ErrBinCodeExists
		}

		return Bin{}, err
	}

	return bin, nil
}

// InsertMissing creates the bins whose warehouse and code are not taken yet.
func (d *BinDAO) InsertMissing(ctx context.Context, bins []Bin) (int, error) {
	if len(bins) == 0 {
		return 0, nil
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "warehouse"}, {Name: "code"}},
		DoNothing: true,
	}).CreateInBatches(&bins, 500)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

func (d *BinDAO) FindByID(ctx context.Context, id uint) (BinWithStock, error) {
	var bin BinWithStock
	err := d.db.WithContext(ctx).Table("bins").Select(binOnHandSelect).Where("bins.id = ?", id).Take(&bin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BinWithStock{}, ErrBinNotFound
		}

		return BinWithStock{}, err
	}

	return bin, nil
}

func (d *BinDAO) List(ctx context.Context, warehouse, section string) ([]BinWithStock, error) {
	q := d.db.WithContext(ctx).Table("bins").Select(binOnHandSelect)
	if warehouse != "" {
		q = q.Where("bins.warehouse = ?", warehouse)
	}
	if section != "" {
		q = q.Where("bins.section = ?", section)
	}

	var bins []BinWithStock
	if err := q.Order("bins.warehouse, bins.code").Find(&bins).Error; err != nil {
		return nil, err
	}

	return bins, nil
}

// Update changes capacity and/or active under a row lock. A bin with stock
// cannot be deactivated or shrunk below its on-hand quantity.
func (d *BinDAO) Update(ctx context.Context, id uint, capacity *int, active *bool) (BinWithStock, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bin, onHand, err := lockBin(tx, id)
		if err != nil {
			return err
		}

		changes := map[string]interface{}{"updated_at": gorm.Expr("NOW()")}
		if capacity != nil {
			if *capacity > 0 && *capacity < onHand {
				return ErrBinCapacityExceeded
			}
			changes["capacity"] = *capacity
		}
		if active != nil {
			if !*active && onHand > 0 {
				return ErrBinHasStock
			}
			changes["active"] = *active
		}

		return tx.Model(&bin).Updates(changes).Error
	})
	if err != nil {
		return BinWithStock{}, err
	}

	return d.FindByID(ctx, id)
}

// Stock lists the part batches held in the bin.
func (d *BinDAO) Stock(ctx context.Context, binID uint) ([]BinStockView, error) {
	if _, err := d.FindByID(ctx, binID); err != nil {
		return nil, err
	}

	var rows []BinStockView
	err := d.db.WithContext(ctx).Raw(binStockViewSQL+`
		WHERE bs.bin_id = ? AND bs.qty_on_hand > 0
		ORDER BY p.part_number, bs.received_at, bs.batch_number, bs.id`, binID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
