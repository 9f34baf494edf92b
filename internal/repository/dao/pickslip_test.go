package dao

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	mar = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
)

func TestPlanFIFO(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "PAD-1")
	b1 := seedBin(t, ctx, "01", 0)
	b2 := seedBin(t, ctx, "02", 0)
	seedStock(t, ctx, part, b2, "L2", 4, feb)
	seedStock(t, ctx, part, b1, "L1", 3, jan)
	seedStock(t, ctx, part, b1, "L3", 10, mar)

	tests := []struct {
		name string
		qty  int
		want []int
	}{
		{"inside first row", 2, []int{2}},
		{"exactly first row", 3, []int{3}},
		{"spans two rows", 5, []int{3, 2}},
		{"spans all rows", 17, []int{3, 4, 10}},
		{"more than on hand", 20, []int{3, 4, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks, err := planFIFO(testDB.WithContext(ctx), part.ID, tt.qty)
			require.NoError(t, err)

			got := make([]int, 0, len(picks))
			for _, p := range picks {
				got = append(got, p.Qty)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "L1", picks[0].BatchNumber)
		})
	}
}

func TestPickslipDAO_Complete_FIFO(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "WPR-22")
	b1 := seedBin(t, ctx, "01", 0)
	b2 := seedBin(t, ctx, "02", 0)
	seedStock(t, ctx, part, b2, "NEW", 10, feb)
	seedStock(t, ctx, part, b1, "OLD", 6, jan)
	ps := seedPickslip(t, ctx, "PS-1", PickslipLine{PartID: part.ID, QtyRequested: 8})
	d := NewPickslipDAO(testDB)

	got, picks, err := d.Complete(ctx, ps.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, pickslipCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, 8, got.Lines[0].QtyIssued)
	require.Len(t, picks, 2)
	assert.Equal(t, "OLD", picks[0].BatchNumber)
	assert.Equal(t, 6, picks[0].Qty)
	assert.Equal(t, "NEW", picks[1].BatchNumber)
	assert.Equal(t, 2, picks[1].Qty)
	assert.Equal(t, 0, onHand(t, part.ID, b1.ID))
	assert.Equal(t, 8, onHand(t, part.ID, b2.ID))

	_, _, err = d.Complete(ctx, ps.ID, 0)
	assert.ErrorIs(t, err, ErrPickslipNotOpen)
}

func TestPickslipDAO_Complete_InsufficientRollsBack(t *testing.T) {
	ctx := setup(t)
	plenty := seedPart(t, ctx, "A-1")
	scarce := seedPart(t, ctx, "B-1")
	bin := seedBin(t, ctx, "01", 0)
	seedStock(t, ctx, plenty, bin, "L", 10, jan)
	seedStock(t, ctx, scarce, bin, "L", 1, jan)
	ps := seedPickslip(t, ctx, "PS-2",
		PickslipLine{PartID: plenty.ID, QtyRequested: 5},
		PickslipLine{PartID: scarce.ID, QtyRequested: 2},
	)
	d := NewPickslipDAO(testDB)

	_, _, err := d.Complete(ctx, ps.ID, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 10, onHand(t, plenty.ID, bin.ID))
	assert.Equal(t, 1, onHand(t, scarce.ID, bin.ID))
	after, err := d.FindByID(ctx, ps.ID)
	require.NoError(t, err)
	assert.Equal(t, pickslipOpen, after.Status)
	assert.Equal(t, 0, after.Lines[0].QtyIssued)
}

func TestPickslipDAO_HoldThenComplete(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "HOSE-9")
	b1 := seedBin(t, ctx, "01", 0)
	b2 := seedBin(t, ctx, "02", 0)
	seedStock(t, ctx, part, b1, "OLD", 3, jan)
	seedStock(t, ctx, part, b2, "NEW", 10, feb)
	ps := seedPickslip(t, ctx, "PS-3", PickslipLine{PartID: part.ID, QtyRequested: 6})
	d := NewPickslipDAO(testDB)

	held, err := d.Hold(ctx, ps.ID, part.ID, 4, 0)
	require.NoError(t, err)
	require.Len(t, held, 2)
	assert.Equal(t, 3, held[0].Qty)
	assert.Equal(t, b1.Code, held[0].BinCode)
	assert.Equal(t, 1, held[1].Qty)
	assert.Equal(t, 0, onHand(t, part.ID, b1.ID))
	assert.Equal(t, 9, onHand(t, part.ID, b2.ID))

	_, err = d.Hold(ctx, ps.ID, part.ID, 3, 0)
	assert.ErrorIs(t, err, ErrHoldExceedsOutstanding)

	suggestions, err := d.SuggestPicks(ctx, ps.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Len(t, suggestions[0].Holdings, 2)
	require.Len(t, suggestions[0].Bins, 1)
	assert.Equal(t, 2, suggestions[0].Bins[0].Qty)

	_, picks, err := d.Complete(ctx, ps.ID, 0)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.NotZero(t, picks[0].HoldingID)
	assert.NotZero(t, picks[1].HoldingID)
	assert.Zero(t, picks[2].HoldingID)
	assert.Equal(t, 2, picks[2].Qty)
	assert.Equal(t, 7, onHand(t, part.ID, b2.ID))

	holdings, err := d.Holdings(ctx, ps.ID)
	require.NoError(t, err)
	for _, h := range holdings {
		assert.Equal(t, holdingIssued, h.Status)
	}
}

func TestPickslipDAO_Hold_Errors(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "X-1")
	other := seedPart(t, ctx, "Y-1")
	bin := seedBin(t, ctx, "01", 0)
	seedStock(t, ctx, part, bin, "L", 2, jan)
	ps := seedPickslip(t, ctx, "PS-4", PickslipLine{PartID: part.ID, QtyRequested: 5})
	d := NewPickslipDAO(testDB)

	_, err := d.Hold(ctx, ps.ID, other.ID, 1, 0)
	assert.ErrorIs(t, err, ErrPartNotOnPickslip)

	_, err = d.Hold(ctx, ps.ID, part.ID, 3, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, onHand(t, part.ID, bin.ID))

	_, err = d.Hold(ctx, 9999, part.ID, 1, 0)
	assert.ErrorIs(t, err, ErrPickslipNotFound)
}

func TestPickslipDAO_ReleaseAndCancel(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "BELT-3")
	bin := seedBin(t, ctx, "01", 0)
	seedStock(t, ctx, part, bin, "L", 10, jan)
	ps := seedPickslip(t, ctx, "PS-5", PickslipLine{PartID: part.ID, QtyRequested: 10})
	d := NewPickslipDAO(testDB)

	first, err := d.Hold(ctx, ps.ID, part.ID, 3, 0)
	require.NoError(t, err)
	_, err = d.Hold(ctx, ps.ID, part.ID, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, onHand(t, part.ID, bin.ID))

	released, err := d.ReleaseHolding(ctx, first[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, holdingReleased, released.Status)
	assert.Equal(t, 6, onHand(t, part.ID, bin.ID))

	_, err = d.ReleaseHolding(ctx, first[0].ID, 0)
	assert.ErrorIs(t, err, ErrHoldingNotHeld)

	cancelled, movements, err := d.Cancel(ctx, ps.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, pickslipCancelled, cancelled.Status)
	assert.Len(t, movements, 1)
	assert.Equal(t, 10, onHand(t, part.ID, bin.ID))

	var stock BinStock
	require.NoError(t, testDB.Where("part_id = ? AND bin_id = ?", part.ID, bin.ID).Take(&stock).Error)
	assert.True(t, stock.ReceivedAt.Equal(jan))
}

func TestPickslipDAO_TransferHolding(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "CLAMP-7")
	bin := seedBin(t, ctx, "01", 0)
	seedStock(t, ctx, part, bin, "L", 10, jan)
	from := seedPickslip(t, ctx, "PS-6", PickslipLine{PartID: part.ID, QtyRequested: 5})
	to := seedPickslip(t, ctx, "PS-7", PickslipLine{PartID: part.ID, QtyRequested: 3})
	d := NewPickslipDAO(testDB)

	held, err := d.Hold(ctx, from.ID, part.ID, 5, 0)
	require.NoError(t, err)
	require.Len(t, held, 1)

	_, _, err = d.TransferHolding(ctx, held[0].ID, to.ID, 4)
	assert.ErrorIs(t, err, ErrHoldExceedsOutstanding)

	source, moved, err := d.TransferHolding(ctx, held[0].ID, to.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, source.Qty)
	assert.Equal(t, 2, moved.Qty)
	assert.Equal(t, to.ID, moved.PickslipID)
	assert.NotEqual(t, source.ID, moved.ID)

	_, _, err = d.TransferHolding(ctx, held[0].ID, from.ID, 1)
	assert.ErrorIs(t, err, ErrSamePickslip)

	_, _, err = d.TransferHolding(ctx, held[0].ID, to.ID, 4)
	assert.ErrorIs(t, err, ErrHoldingQtyExceeded)

	toHoldings, err := d.Holdings(ctx, to.ID)
	require.NoError(t, err)
	require.Len(t, toHoldings, 1)
	assert.Equal(t, 2, toHoldings[0].Qty)
}

func TestPickslipDAO_Hold_ConcurrentSamePart(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "OIL-5W")
	var bins []Bin
	for i, code := range []string{"01", "02", "03", "04"} {
		b := seedBin(t, ctx, code, 0)
		bins = append(bins, b)
		seedStock(t, ctx, part, b, fmt.Sprintf("L%d", i), 5, jan.AddDate(0, 0, i))
	}

	const workers = 10
	slips := make([]Pickslip, workers)
	for i := range slips {
		slips[i] = seedPickslip(t, ctx, fmt.Sprintf("PS-C%d", i), PickslipLine{PartID: part.ID, QtyRequested: 2})
	}

	d := NewPickslipDAO(testDB)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range slips {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.Hold(ctx, slips[i].ID, part.ID, 2, 0)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	for _, b := range bins {
		assert.Equal(t, 0, onHand(t, part.ID, b.ID))
	}
}
