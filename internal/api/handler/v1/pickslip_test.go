package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/service"
)

func mountPickslips(svc PickslipService) http.Handler {
	r, g := newRouter(picker)
	h := NewPickslipHandler(svc)
	g.POST("/pickslips", h.HandleCreatePickslip)
	g.GET("/pickslips/:pickslipID/picks", h.HandleSuggestPicks)
	g.POST("/pickslips/:pickslipID/complete", h.HandleCompletePickslip)
	g.POST("/pickslips/:pickslipID/cancel", h.HandleCancelPickslip)
	g.POST("/pickslips/:pickslipID/holdings", h.HandleHold)
	g.GET("/pickslips/:pickslipID/holdings", h.HandleListHoldings)
	g.POST("/holdings/:holdingID/release", h.HandleReleaseHolding)
	g.POST("/holdings/:holdingID/transfer", h.HandleTransferHolding)

	return r
}

func TestPickslipHandler_HandleCreatePickslip(t *testing.T) {
	svc := new(mockPickslipService)
	svc.On("CreatePickslip", mock.Anything, domain.Pickslip{
		Customer:  "Fleet Co",
		CreatedBy: picker.ID,
		Lines:     []domain.PickslipLine{{PartID: 7, QtyRequested: 3}},
	}).Return(domain.Pickslip{ID: 1, PickslipNumber: "PS-00000001"}, nil)

	r := mountPickslips(svc)
	w := do(t, r, http.MethodPost, "/api/v1/pickslips", `{"customer":"Fleet Co","lines":[{"part_id":7,"qty_requested":3}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/pickslips",
		`{"customer":"Fleet Co","lines":[{"part_id":7,"qty_requested":3},{"part_id":7,"qty_requested":1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPickslipHandler_HandleCompletePickslip(t *testing.T) {
	completion := domain.Completion{
		Pickslip: domain.Pickslip{ID: 2, Status: domain.PickslipCompleted},
		Picks: []domain.Pick{
			{PartID: 7, BinID: 1, Qty: 2, Source: domain.PickSourceHolding, HoldingID: 9},
			{PartID: 7, BinID: 3, Qty: 5, Source: domain.PickSourceBin},
		},
	}
	svc := new(mockPickslipService)
	svc.On("Complete", mock.Anything, uint(2), picker.ID).Return(completion, nil)
	svc.On("Complete", mock.Anything, uint(3), picker.ID).Return(domain.Completion{}, service.ErrInsufficientStock)
	svc.On("Complete", mock.Anything, uint(4), picker.ID).Return(domain.Completion{}, service.ErrPickslipNotOpen)
	svc.On("Complete", mock.Anything, uint(5), picker.ID).Return(domain.Completion{}, errors.New("deadlock detected"))

	r := mountPickslips(svc)

	w := do(t, r, http.MethodPost, "/api/v1/pickslips/2/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Completion](t, w)
	assert.Equal(t, domain.PickslipCompleted, got.Pickslip.Status)
	assert.Equal(t, completion.Picks, got.Picks)

	w = do(t, r, http.MethodPost, "/api/v1/pickslips/3/complete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/pickslips/4/complete", nil).Code)

	w = do(t, r, http.MethodPost, "/api/v1/pickslips/5/complete", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadlock")
}

func TestPickslipHandler_HandleSuggestPicks(t *testing.T) {
	suggestions := []domain.PickSuggestion{{LineID: 1, PartID: 7, Outstanding: 10, Shortfall: 3,
		Picks: []domain.Pick{{PartID: 7, BinID: 2, Qty: 7, Source: domain.PickSourceBin}}}}
	svc := new(mockPickslipService)
	svc.On("SuggestPicks", mock.Anything, uint(2)).Return(suggestions, nil)

	w := do(t, mountPickslips(svc), http.MethodGet, "/api/v1/pickslips/2/picks", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, suggestions, decode[[]domain.PickSuggestion](t, w))
}

func TestPickslipHandler_HandleHold(t *testing.T) {
	svc := new(mockPickslipService)
	svc.On("Hold", mock.Anything, uint(2), uint(7), 4, picker.ID).
		Return([]domain.Holding{{ID: 1, Qty: 4, Status: domain.HoldingHeld}}, nil)
	svc.On("Hold", mock.Anything, uint(2), uint(8), 1, picker.ID).
		Return([]domain.Holding(nil), service.ErrPartNotOnPickslip)

	r := mountPickslips(svc)
	assert.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/pickslips/2/holdings", `{"part_id":7,"qty":4}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/pickslips/2/holdings", `{"part_id":8,"qty":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/pickslips/2/holdings", `{"part_id":7,"qty":0}`).Code)
}

func TestPickslipHandler_HandleTransferHolding(t *testing.T) {
	source := domain.Holding{ID: 1, PickslipID: 2, Qty: 3, Status: domain.HoldingHeld}
	moved := domain.Holding{ID: 5, PickslipID: 6, Qty: 2, Status: domain.HoldingHeld}
	svc := new(mockPickslipService)
	svc.On("TransferHolding", mock.Anything, uint(1), uint(6), 2).Return(source, moved, nil)
	svc.On("TransferHolding", mock.Anything, uint(1), uint(2), 1).Return(domain.Holding{}, domain.Holding{}, service.ErrSamePickslip)
	svc.On("TransferHolding", mock.Anything, uint(1), uint(6), 9).Return(domain.Holding{}, domain.Holding{}, service.ErrHoldingQtyExceeded)

	r := mountPickslips(svc)

	w := do(t, r, http.MethodPost, "/api/v1/holdings/1/transfer", `{"pickslip_id":6,"qty":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[response.HoldingTransferResponse](t, w)
	assert.Equal(t, 3, got.Source.Qty)
	assert.Equal(t, uint(6), got.Moved.PickslipID)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/holdings/1/transfer", `{"pickslip_id":2,"qty":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/holdings/1/transfer", `{"pickslip_id":6,"qty":9}`).Code)
}

func TestPickslipHandler_HandleReleaseHolding(t *testing.T) {
	svc := new(mockPickslipService)
	svc.On("ReleaseHolding", mock.Anything, uint(1), picker.ID).Return(domain.Holding{ID: 1, Status: domain.HoldingReleased}, nil)
	svc.On("ReleaseHolding", mock.Anything, uint(2), picker.ID).Return(domain.Holding{}, service.ErrHoldingNotHeld)
	svc.On("ReleaseHolding", mock.Anything, uint(3), picker.ID).Return(domain.Holding{}, service.ErrHoldingNotFound)

	r := mountPickslips(svc)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/v1/holdings/1/release", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/v1/holdings/2/release", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/v1/holdings/3/release", nil).Code)
}

func TestPickslipHandler_HandleCancelPickslip(t *testing.T) {
	svc := new(mockPickslipService)
	svc.On("Cancel", mock.Anything, uint(2), picker.ID).Return(domain.Pickslip{ID: 2, Status: domain.PickslipCancelled}, nil)

	w := do(t, mountPickslips(svc), http.MethodPost, "/api/v1/pickslips/2/cancel", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PickslipCancelled, decode[domain.Pickslip](t, w).Status)
}
