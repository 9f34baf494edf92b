package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type ReceivingService interface {
	CreateReceipt(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error)
	GetReceipt(ctx context.Context, id uint) (domain.Receipt, error)
	ListReceipts(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error)
	CancelReceipt(ctx context.Context, id uint) (domain.Receipt, error)
	Allocate(ctx context.Context, receiptID uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error)
}

type ReceiptHandler struct {
	svc ReceivingService
}

func NewReceiptHandler(svc ReceivingService) *ReceiptHandler {
	return &ReceiptHandler{
		svc: svc,
	}
}

// HandleCreateReceipt godoc
// @Summary      Record goods received
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateReceiptRequest  true  "receipt with lines"
// @Success      201  {object}  domain.Receipt
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /receipts [post]
// @Security     BearerAuth
func (h *ReceiptHandler) HandleCreateReceipt(ctx *gin.Context) {
	var req request.CreateReceiptRequest
	if !bindJSON(ctx, &req) {
		return
	}

	receipt, err := h.svc.CreateReceipt(ctx.Request.Context(), req.ToDomain(currentUser(ctx).ID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateReceipt -> h.svc.CreateReceipt", err)
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// HandleListReceipts godoc
// @Summary      List receipts
// @Tags         receipts
// @Produce      json
// @Param        status  query     string  false  "open, allocated or cancelled"
// @Param        limit   query     int     false  "page size"
// @Param        offset  query     int     false  "page offset"
// @Success      200  {array}   domain.Receipt
// @Failure      500  {object}  response.Err
// @Router       /receipts [get]
// @Security     BearerAuth
func (h *ReceiptHandler) HandleListReceipts(ctx *gin.Context) {
	var query request.ListQuery
	if !bindQuery(ctx, &query) {
		return
	}

	receipts, err := h.svc.ListReceipts(ctx.Request.Context(), query.Status, query.Limit, query.Offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListReceipts -> h.svc.ListReceipts", err)
		return
	}

	ctx.JSON(http.StatusOK, receipts)
}

// HandleGetReceipt godoc
// @Summary      Get a receipt with its lines
// @Tags         receipts
// @Produce      json
// @Param        receiptID  path      int  true  "Receipt ID"
// @Success      200  {object}  domain.Receipt
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /receipts/{receiptID} [get]
// @Security     BearerAuth
func (h *ReceiptHandler) HandleGetReceipt(ctx *gin.Context) {
	receiptID, respErr := parseID(ctx, "receiptID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	receipt, err := h.svc.GetReceipt(ctx.Request.Context(), receiptID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetReceipt -> h.svc.GetReceipt", err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// HandleCancelReceipt godoc
// @Summary      Cancel a receipt
// @Description  Only open receipts with nothing allocated can be cancelled.
// @Tags         receipts
// @Produce      json
// @Param        receiptID  path      int  true  "Receipt ID"
// @Success      200  {object}  domain.Receipt
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /receipts/{receiptID}/cancel [post]
// @Security     BearerAuth
func (h *ReceiptHandler) HandleCancelReceipt(ctx *gin.Context) {
	receiptID, respErr := parseID(ctx, "receiptID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	receipt, err := h.svc.CancelReceipt(ctx.Request.Context(), receiptID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCancelReceipt -> h.svc.CancelReceipt", err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// HandleAllocate godoc
// @Summary      Allocate received stock to bins
// @Description  All allocations are applied in one transaction; any failure rolls every one back.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        receiptID  path      int                       true  "Receipt ID"
// @Param        request    body      request.AllocateRequest  true  "allocations"
// @Success      200  {object}  domain.AllocationResult
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /receipts/{receiptID}/allocations [post]
// @Security     BearerAuth
func (h *ReceiptHandler) HandleAllocate(ctx *gin.Context) {
	receiptID, respErr := parseID(ctx, "receiptID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AllocateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := h.svc.Allocate(ctx.Request.Context(), receiptID, req.ToDomain(), currentUser(ctx).ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAllocate -> h.svc.Allocate", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
