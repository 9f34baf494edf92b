package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/service"
)

func mountBins(svc BinService) http.Handler {
	r, g := newRouter(clerk)
	h := NewBinHandler(svc)
	g.GET("/bins", h.HandleListBins)
	g.POST("/bins", h.HandleCreateBin)
	g.PUT("/bins/:binID", h.HandleUpdateBin)
	g.GET("/bins/:binID/stock", h.HandleGetBinStock)

	return r
}

func TestBinHandler_HandleCreateBin(t *testing.T) {
	svc := new(mockBinService)
	svc.On("CreateBin", mock.Anything, domain.Bin{
		Warehouse: "main", Section: "a", SubSection: "01", Label: "03", Capacity: 40,
	}).Return(domain.Bin{ID: 1, Code: "A-01-03"}, nil)

	w := do(t, mountBins(svc), http.MethodPost, "/api/v1/bins",
		`{"warehouse":"main","section":"a","sub_section":"01","bin":"03","capacity":40}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "A-01-03", decode[domain.Bin](t, w).Code)
}

func TestBinHandler_HandleCreateBin_Duplicate(t *testing.T) {
	svc := new(mockBinService)
	svc.On("CreateBin", mock.Anything, mock.Anything).Return(domain.Bin{}, service.ErrBinCodeExists)

	w := do(t, mountBins(svc), http.MethodPost, "/api/v1/bins",
		`{"warehouse":"main","section":"a","sub_section":"01","bin":"03"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrBinCodeExists.Error())
}

func TestBinHandler_HandleUpdateBin(t *testing.T) {
	inactive := false
	svc := new(mockBinService)
	svc.On("UpdateBin", mock.Anything, uint(2), domain.BinUpdate{Active: &inactive}).
		Return(domain.Bin{}, service.ErrBinHasStock)

	r := mountBins(svc)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/v1/bins/2", `{"active":false}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/v1/bins/2", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/v1/bins/2", `{"capacity":-1}`).Code)
}

func TestBinHandler_HandleListBins(t *testing.T) {
	svc := new(mockBinService)
	svc.On("ListBins", mock.Anything, domain.BinFilter{Warehouse: "main", Section: "a"}).
		Return([]domain.Bin{{ID: 1}}, nil)

	w := do(t, mountBins(svc), http.MethodGet, "/api/v1/bins?warehouse=main&section=a", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Bin](t, w), 1)
}

func TestBinHandler_HandleGetBinStock_NotFound(t *testing.T) {
	svc := new(mockBinService)
	svc.On("GetBinStock", mock.Anything, uint(8)).Return([]domain.BinStock(nil), service.ErrBinNotFound)

	w := do(t, mountBins(svc), http.MethodGet, "/api/v1/bins/8/stock", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
