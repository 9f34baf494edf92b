package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type StockOnHandRow struct {
	PartNumber  string
	Description string
	Warehouse   string
	BinCode     string
	BatchNumber string
	ReceivedAt  time.Time
	QtyOnHand   int
}

const stockOnHandSQL = `
	SELECT p.part_number, p.description, b.warehouse, b.code AS bin_code,
	       bs.batch_number, bs.received_at, bs.qty_on_hand
	FROM bin_stocks bs
	JOIN parts p ON p.id = bs.part_id
	JOIN bins b ON b.id = bs.bin_id
	WHERE bs.qty_on_hand > 0 AND (@warehouse = '' OR b.warehouse = @warehouse)
	ORDER BY p.part_number, bs.received_at, bs.batch_number, b.code, bs.id`

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) StockOnHand(ctx context.Context, warehouse string) ([]StockOnHandRow, error) {
	var rows []StockOnHandRow
	err := d.db.WithContext(ctx).Raw(stockOnHandSQL, map[string]interface{}{"warehouse": warehouse}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
