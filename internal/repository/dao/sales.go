package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	leadNew       = "new"
	leadContacted = "contacted"
	leadQuoted    = "quoted"
	leadWon       = "won"

	quoteAccepted = "accepted"
)

type Lead struct {
	ID          uint `gorm:"primaryKey"`
	Company     string
	ContactName string
	Email       string
	Phone       string
	FleetSize   int
	Status      string
	Notes       string
	OwnerID     *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Quote struct {
	ID          uint `gorm:"primaryKey"`
	QuoteNumber string
	LeadID      uint
	Status      string
	ValidUntil  *time.Time      `gorm:"type:date"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedBy   *uint
	Lines       []QuoteLine `gorm:"foreignKey:QuoteID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QuoteLine struct {
	ID           uint `gorm:"primaryKey"`
	QuoteID      uint
	Description  string
	VehicleModel string
	Qty          int
	UnitPrice    decimal.Decimal `gorm:"type:numeric(14,2)"`
	DiscountPct  decimal.Decimal `gorm:"type:numeric(5,2)"`
	LineTotal    decimal.Decimal `gorm:"type:numeric(14,2)"`
}

type SalesDAO struct {
	db *gorm.DB
}

func NewSalesDAO(db *gorm.DB) *SalesDAO {
	return &SalesDAO{
		db: db,
	}
}

func (d *SalesDAO) InsertLead(ctx context.Context, lead Lead) (Lead, error) {
	if err := d.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return Lead{}, err
	}

	return lead, nil
}

func (d *SalesDAO) FindLead(ctx context.Context, id uint) (Lead, error) {
	var lead Lead
	if err := d.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Lead{}, ErrLeadNotFound
		}

		return Lead{}, err
	}

	return lead, nil
}

func (d *SalesDAO) ListLeads(ctx context.Context, status string, limit, offset int) ([]Lead, error) {
	q := d.db.WithContext(ctx).Model(&Lead{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var leads []Lead
	if err := q.Order("updated_at DESC, id DESC").Limit(limit).Offset(offset).Find(&leads).Error; err != nil {
		return nil, err
	}

	return leads, nil
}

func (d *SalesDAO) UpdateLead(ctx context.Context, lead Lead) (Lead, error) {
	result := d.db.WithContext(ctx).Model(&Lead{ID: lead.ID}).Updates(map[string]interface{}{
		"company":      lead.Company,
		"contact_name": lead.ContactName,
		"email":        lead.Email,
		"phone":        lead.Phone,
		"fleet_size":   lead.FleetSize,
		"status":       lead.Status,
		"notes":        lead.Notes,
		"updated_at":   gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return Lead{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Lead{}, ErrLeadNotFound
	}

	return d.FindLead(ctx, lead.ID)
}

// InsertQuote stores the quote with its lines and moves a new or contacted
// lead to quoted.
func (d *SalesDAO) InsertQuote(ctx context.Context, quote Quote) (Quote, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead Lead
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lead, quote.LeadID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeadNotFound
			}

			return err
		}

		if err = tx.Create(&quote).Error; err != nil {
			return err
		}

		if lead.Status == leadNew || lead.Status == leadContacted {
			return tx.Model(&lead).Updates(map[string]interface{}{
				"status":     leadQuoted,
				"updated_at": gorm.Expr("NOW()"),
			}).Error
		}

		return nil
	})
	if err != nil {
		return Quote{}, err
	}

	return quote, nil
}

func (d *SalesDAO) FindQuote(ctx context.Context, id uint) (Quote, error) {
	return findQuote(d.db.WithContext(ctx), id)
}

func findQuote(tx *gorm.DB, id uint) (Quote, error) {
	var quote Quote
	err := tx.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("quote_lines.id")
	}).First(&quote, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Quote{}, ErrQuoteNotFound
		}

		return Quote{}, err
	}

	return quote, nil
}

func (d *SalesDAO) ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]Quote, error) {
	q := d.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("quote_lines.id")
	})
	if leadID != 0 {
		q = q.Where("lead_id = ?", leadID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var quotes []Quote
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&quotes).Error; err != nil {
		return nil, err
	}

	return quotes, nil
}

// UpdateQuoteStatus moves the quote to status when its current status is one
// of from. Accepting a quote wins its lead.
func (d *SalesDAO) UpdateQuoteStatus(ctx context.Context, id uint, from []string, status string) (Quote, error) {
	var quote Quote
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked Quote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuoteNotFound
			}

			return err
		}

		result := tx.Model(&Quote{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(map[string]interface{}{"status": status, "updated_at": gorm.Expr("NOW()")})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidQuoteTransition
		}

		if status == quoteAccepted {
			err = tx.Model(&Lead{}).Where("id = ?", locked.LeadID).Updates(map[string]interface{}{
				"status":     leadWon,
				"updated_at": gorm.Expr("NOW()"),
			}).Error
			if err != nil {
				return err
			}
		}

		quote, err = findQuote(tx, id)
		return err
	})
	if err != nil {
		return Quote{}, err
	}

	return quote, nil
}
