package dao

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesDAO_QuoteLifecycle(t *testing.T) {
	ctx := setup(t)
	d := NewSalesDAO(testDB)

	lead, err := d.InsertLead(ctx, Lead{Company: "Metro Cabs", FleetSize: 40, Status: leadNew})
	require.NoError(t, err)

	quote, err := d.InsertQuote(ctx, Quote{
		QuoteNumber: "QT-1",
		LeadID:      lead.ID,
		Status:      "draft",
		Total:       decimal.RequireFromString("1800.00"),
		Lines: []QuoteLine{{
			Description: "Van", Qty: 2, UnitPrice: decimal.NewFromInt(1000),
			DiscountPct: decimal.NewFromInt(10), LineTotal: decimal.RequireFromString("1800.00"),
		}},
	})
	require.NoError(t, err)

	got, err := d.FindLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, leadQuoted, got.Status)

	_, err = d.UpdateQuoteStatus(ctx, quote.ID, []string{"sent"}, quoteAccepted)
	assert.ErrorIs(t, err, ErrInvalidQuoteTransition)

	_, err = d.UpdateQuoteStatus(ctx, quote.ID, []string{"draft"}, "sent")
	require.NoError(t, err)
	accepted, err := d.UpdateQuoteStatus(ctx, quote.ID, []string{"sent"}, quoteAccepted)
	require.NoError(t, err)
	assert.Equal(t, quoteAccepted, accepted.Status)
	require.Len(t, accepted.Lines, 1)
	assert.True(t, accepted.Lines[0].LineTotal.Equal(decimal.NewFromInt(1800)))

	got, err = d.FindLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, leadWon, got.Status)

	_, err = d.InsertQuote(ctx, Quote{QuoteNumber: "QT-2", LeadID: 9999, Status: "draft"})
	assert.ErrorIs(t, err, ErrLeadNotFound)

	_, err = d.UpdateQuoteStatus(ctx, 9999, []string{"draft"}, "sent")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestReportDAO_StockOnHand(t *testing.T) {
	ctx := setup(t)
	a := seedPart(t, ctx, "AAA")
	b := seedPart(t, ctx, "BBB")
	bin := seedBin(t, ctx, "01", 0)
	seedStock(t, ctx, b, bin, "L", 1, jan)
	seedStock(t, ctx, a, bin, "L2", 2, feb)
	seedStock(t, ctx, a, bin, "L1", 3, jan)

	rows, err := NewReportDAO(testDB).StockOnHand(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "AAA", rows[0].PartNumber)
	assert.Equal(t, "L1", rows[0].BatchNumber)
	assert.Equal(t, "L2", rows[1].BatchNumber)
	assert.Equal(t, "BBB", rows[2].PartNumber)

	rows, err = NewReportDAO(testDB).StockOnHand(ctx, "OTHER")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
