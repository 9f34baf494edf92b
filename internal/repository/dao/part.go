package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Part struct {
	ID          uint `gorm:"primaryKey"`
	PartNumber  string
	Description string
	UOM         string          `gorm:"column:uom"`
	UnitCost    decimal.Decimal `gorm:"type:numeric(14,4)"`
	SourceRef   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PartDAO struct {
	db *gorm.DB
}

func NewPartDAO(db *gorm.DB) *PartDAO {
	return &PartDAO{
		db: db,
	}
}

func (d *PartDAO) Insert(ctx context.Context, part Part) (Part, error) {
	if err := d.db.WithContext(ctx).Create(&part).Error; err != nil {
		if isUniqueViolation(err, "uni_parts_part_number") {
			return Part{}, ErrPartNumberExists
		}

		return Part{}, err
	}

	return part, nil
}

func (d *PartDAO) FindByID(ctx context.Context, id uint) (Part, error) {
	var part Part
	if err := d.db.WithContext(ctx).First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Part{}, ErrPartNotFound
		}

		return Part{}, err
	}

	return part, nil
}

// List matches query against part number and description, case-insensitively.
func (d *PartDAO) List(ctx context.Context, query string, limit, offset int) ([]Part, error) {
	q := d.db.WithContext(ctx).Model(&Part{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("part_number ILIKE ? OR description ILIKE ?", like, like)
	}

	var parts []Part
	if err := q.Order("part_number").Limit(limit).Offset(offset).Find(&parts).Error; err != nil {
		return nil, err
	}

	return parts, nil
}

func (d *PartDAO) Update(ctx context.Context, part Part) (Part, error) {
	result := d.db.WithContext(ctx).Model(&Part{ID: part.ID}).Updates(map[string]interface{}{
		"description": part.Description,
		"uom":         part.UOM,
		"unit_cost":   part.UnitCost,
		"updated_at":  gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return Part{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Part{}, ErrPartNotFound
	}

	return d.FindByID(ctx, part.ID)
}
