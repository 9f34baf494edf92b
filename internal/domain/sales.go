package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadQuoted    = "quoted"
	LeadWon       = "won"
	LeadLost      = "lost"
)

var LeadStatuses = []string{LeadNew, LeadContacted, LeadQuoted, LeadWon, LeadLost}

type Lead struct {
	ID          uint      `json:"id"`
	Company     string    `json:"company"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	FleetSize   int       `json:"fleet_size"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LeadFilter struct {
	Status string
	Limit  int
	Offset int
}

const (
	QuoteDraft    = "draft"
	QuoteSent     = "sent"
	QuoteAccepted = "accepted"
	QuoteRejected = "rejected"
)

var quoteTransitions = map[string][]string{
	QuoteDraft: {QuoteSent},
	QuoteSent:  {QuoteAccepted, QuoteRejected},
}

func CanTransitionQuote(from, to string) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

type Quote struct {
	ID          uint            `json:"id"`
	QuoteNumber string          `json:"quote_number"`
	LeadID      uint            `json:"lead_id"`
	Status      string          `json:"status"`
	ValidUntil  *time.Time      `json:"valid_until,omitempty"`
	Total       decimal.Decimal `json:"total"`
	CreatedBy   uint            `json:"created_by"`
	Lines       []QuoteLine     `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type QuoteLine struct {
	ID           uint            `json:"id"`
	QuoteID      uint            `json:"quote_id"`
	Description  string          `json:"description"`
	VehicleModel string          `json:"vehicle_model"`
	Qty          int             `json:"qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

var hundred = decimal.NewFromInt(100)

// Price sets every line total and the quote total, rounded to cents.
func (q *Quote) Price() {
	total := decimal.Zero
	for i := range q.Lines {
		l := &q.Lines[i]
		factor := decimal.NewFromInt(1).Sub(l.DiscountPct.Div(hundred))
		l.LineTotal = decimal.NewFromInt(int64(l.Qty)).Mul(l.UnitPrice).Mul(factor).Round(2)
		total = total.Add(l.LineTotal)
	}
	q.Total = total
}

// QuoteStatusesBefore lists the statuses a quote may move to status from.
func QuoteStatusesBefore(status string) []string {
	var from []string
	for prev, next := range quoteTransitions {
		for _, s := range next {
			if s == status {
				from = append(from, prev)
			}
		}
	}

	return from
}
