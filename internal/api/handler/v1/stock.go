package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type StockService interface {
	Movements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error)
	Transfer(ctx context.Context, t domain.Transfer) (domain.BinStock, domain.BinStock, error)
}

type StockHandler struct {
	svc StockService
}

func NewStockHandler(svc StockService) *StockHandler {
	return &StockHandler{
		svc: svc,
	}
}

// HandleListMovements godoc
// @Summary      Stock movement ledger
// @Tags         stock
// @Produce      json
// @Param        part_id  query     int     false  "Part ID"
// @Param        from     query     string  false  "RFC 3339 lower bound"
// @Param        to       query     string  false  "RFC 3339 upper bound"
// @Param        limit    query     int     false  "page size"
// @Success      200  {array}   domain.StockMovement
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stock/movements [get]
// @Security     BearerAuth
func (h *StockHandler) HandleListMovements(ctx *gin.Context) {
	var query request.MovementQuery
	if !bindQuery(ctx, &query) {
		return
	}

	movements, err := h.svc.Movements(ctx.Request.Context(), domain.MovementFilter{
		PartID: query.PartID,
		From:   query.From,
		To:     query.To,
		Limit:  query.Limit,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListMovements -> h.svc.Movements", err)
		return
	}

	ctx.JSON(http.StatusOK, movements)
}

// HandleTransfer godoc
// @Summary      Move stock between bins
// @Description  The batch keeps its received date in the destination bin.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request  body      request.TransferRequest  true  "transfer"
// @Success      200  {object}  response.TransferResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transfers [post]
// @Security     BearerAuth
func (h *StockHandler) HandleTransfer(ctx *gin.Context) {
	var req request.TransferRequest
	if !bindJSON(ctx, &req) {
		return
	}

	from, to, err := h.svc.Transfer(ctx.Request.Context(), req.ToDomain(currentUser(ctx).ID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTransfer -> h.svc.Transfer", err)
		return
	}

	ctx.JSON(http.StatusOK, response.TransferResponse{
		From: from,
		To:   to,
	})
}
