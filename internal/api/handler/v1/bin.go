package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type BinService interface {
	CreateBin(ctx context.Context, bin domain.Bin) (domain.Bin, error)
	GetBin(ctx context.Context, id uint) (domain.Bin, error)
	ListBins(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error)
	UpdateBin(ctx context.Context, id uint, update domain.BinUpdate) (domain.Bin, error)
	GetBinStock(ctx context.Context, id uint) ([]domain.BinStock, error)
}

type BinHandler struct {
	svc BinService
}

func NewBinHandler(svc BinService) *BinHandler {
	return &BinHandler{
		svc: svc,
	}
}

// HandleListBins godoc
// @Summary      List bin locations
// @Tags         bins
// @Produce      json
// @Param        warehouse  query     string  false  "warehouse"
// @Param        section    query     string  false  "section"
// @Success      200  {array}   domain.Bin
// @Failure      500  {object}  response.Err
// @Router       /bins [get]
// @Security     BearerAuth
func (h *BinHandler) HandleListBins(ctx *gin.Context) {
	var query request.BinQuery
	if !bindQuery(ctx, &query) {
		return
	}

	bins, err := h.svc.ListBins(ctx.Request.Context(), domain.BinFilter{
		Warehouse: query.Warehouse,
		Section:   query.Section,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListBins -> h.svc.ListBins", err)
		return
	}

	ctx.JSON(http.StatusOK, bins)
}

// HandleGetBin godoc
// @Summary      Get a bin location
// @Tags         bins
// @Produce      json
// @Param        binID  path      int  true  "Bin ID"
// @Success      200  {object}  domain.Bin
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bins/{binID} [get]
// @Security     BearerAuth
func (h *BinHandler) HandleGetBin(ctx *gin.Context) {
	binID, respErr := parseID(ctx, "binID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bin, err := h.svc.GetBin(ctx.Request.Context(), binID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBin -> h.svc.GetBin", err)
		return
	}

	ctx.JSON(http.StatusOK, bin)
}

// HandleCreateBin godoc
// @Summary      Create a bin location
// @Description  The code SECTION-SUBSECTION-BIN must be unique within the warehouse.
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateBinRequest  true  "bin"
// @Success      201  {object}  domain.Bin
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bins [post]
// @Security     BearerAuth
func (h *BinHandler) HandleCreateBin(ctx *gin.Context) {
	var req request.CreateBinRequest
	if !bindJSON(ctx, &req) {
		return
	}

	bin, err := h.svc.CreateBin(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateBin -> h.svc.CreateBin", err)
		return
	}

	ctx.JSON(http.StatusCreated, bin)
}

// HandleUpdateBin godoc
// @Summary      Change bin capacity or active flag
// @Description  A bin with stock on hand cannot be deactivated.
// @Tags         bins
// @Accept       json
// @Produce      json
// @Param        binID    path      int                       true  "Bin ID"
// @Param        request  body      request.UpdateBinRequest  true  "changes"
// @Success      200  {object}  domain.Bin
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bins/{binID} [put]
// @Security     BearerAuth
func (h *BinHandler) HandleUpdateBin(ctx *gin.Context) {
	binID, respErr := parseID(ctx, "binID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateBinRequest
	if !bindJSON(ctx, &req) {
		return
	}

	bin, err := h.svc.UpdateBin(ctx.Request.Context(), binID, req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateBin -> h.svc.UpdateBin", err)
		return
	}

	ctx.JSON(http.StatusOK, bin)
}

// HandleGetBinStock godoc
// @Summary      Stock held in a bin
// @Tags         bins,stock
// @Produce      json
// @Param        binID  path      int  true  "Bin ID"
// @Success      200  {array}   domain.BinStock
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bins/{binID}/stock [get]
// @Security     BearerAuth
func (h *BinHandler) HandleGetBinStock(ctx *gin.Context) {
	binID, respErr := parseID(ctx, "binID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stock, err := h.svc.GetBinStock(ctx.Request.Context(), binID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBinStock -> h.svc.GetBinStock", err)
		return
	}

	ctx.JSON(http.StatusOK, stock)
}
