package dao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockDAO_Transfer(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "SPARK-4")
	src := seedBin(t, ctx, "01", 0)
	dst := seedBin(t, ctx, "02", 5)
	seedStock(t, ctx, part, src, "L1", 8, jan)
	d := NewStockDAO(testDB)

	from, to, err := d.Transfer(ctx, part.ID, "L1", src.ID, dst.ID, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, from.QtyOnHand)
	assert.Equal(t, 5, to.QtyOnHand)
	assert.True(t, to.ReceivedAt.Equal(jan))

	_, _, err = d.Transfer(ctx, part.ID, "L1", src.ID, dst.ID, 1, 0)
	assert.ErrorIs(t, err, ErrBinCapacityExceeded)
	assert.Equal(t, 3, onHand(t, part.ID, src.ID))

	_, _, err = d.Transfer(ctx, part.ID, "L1", src.ID, dst.ID, 4, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, _, err = d.Transfer(ctx, part.ID, "NOPE", src.ID, dst.ID, 1, 0)
	assert.ErrorIs(t, err, ErrBinStockNotFound)

	movements, err := d.Movements(ctx, part.ID, time.Time{}, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, movementTransferIn, movements[0].MovementType)
	assert.Equal(t, movementTransferOut, movements[1].MovementType)
	assert.Equal(t, movementReceive, movements[2].MovementType)
}

func TestStockDAO_PartStock(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "CAB-2")
	b1 := seedBin(t, ctx, "01", 0)
	b2 := seedBin(t, ctx, "02", 0)
	seedStock(t, ctx, part, b2, "L2", 2, feb)
	seedStock(t, ctx, part, b1, "L1", 1, jan)

	rows, err := NewStockDAO(testDB).PartStock(ctx, part.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "L1", rows[0].BatchNumber)
	assert.Equal(t, b1.Code, rows[0].BinCode)
	assert.Equal(t, "CAB-2", rows[0].PartNumber)
	assert.Equal(t, "MAIN", rows[1].Warehouse)
}

func TestBinDAO_Update(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "NUT-8")
	bin := seedBin(t, ctx, "01", 0)
	empty := seedBin(t, ctx, "02", 0)
	seedStock(t, ctx, part, bin, "L", 6, jan)
	d := NewBinDAO(testDB)

	inactive := false
	_, err := d.Update(ctx, bin.ID, nil, &inactive)
	assert.ErrorIs(t, err, ErrBinHasStock)

	small := 5
	_, err = d.Update(ctx, bin.ID, &small, nil)
	assert.ErrorIs(t, err, ErrBinCapacityExceeded)

	got, err := d.Update(ctx, empty.ID, &small, &inactive)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 5, got.Capacity)

	listed, err := d.List(ctx, "MAIN", "")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 6, listed[0].OnHand)

	_, err = d.Insert(ctx, Bin{Warehouse: "MAIN", Section: "A", SubSection: "01", Label: "01", Code: bin.Code, Active: true})
	assert.ErrorIs(t, err, ErrBinCodeExists)

	n, err := d.InsertMissing(ctx, []Bin{
		{Warehouse: "MAIN", Section: "A", SubSection: "01", Label: "01", Code: bin.Code, Active: true},
		{Warehouse: "MAIN", Section: "A", SubSection: "01", Label: "03", Code: "A-01-03", Active: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBinDAO_AllocateIntoInactiveBin(t *testing.T) {
	ctx := setup(t)
	part := seedPart(t, ctx, "ROD-1")
	bin := seedBin(t, ctx, "01", 0)
	inactive := false
	_, err := NewBinDAO(testDB).Update(ctx, bin.ID, nil, &inactive)
	require.NoError(t, err)

	receipts := NewReceiptDAO(testDB)
	r, err := receipts.Insert(ctx, Receipt{ReceiptNumber: "RC-9", Supplier: "ACME", ReceivedAt: jan,
		Lines: []ReceiptLine{{PartID: part.ID, QtyReceived: 1}}})
	require.NoError(t, err)
	_, _, err = receipts.Allocate(ctx, r.ID, []Allocation{{LineID: r.Lines[0].ID, BinID: bin.ID, Qty: 1}}, 0)
	assert.ErrorIs(t, err, ErrBinInactive)
}
