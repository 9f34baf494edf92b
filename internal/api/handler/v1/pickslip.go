package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type PickslipService interface {
	CreatePickslip(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error)
	GetPickslip(ctx context.Context, id uint) (domain.Pickslip, error)
	ListPickslips(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error)
	SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error)
	Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error)
	Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, error)
	Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error)
	Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error)
	ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error)
	TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error)
}

type PickslipHandler struct {
	svc PickslipService
}

func NewPickslipHandler(svc PickslipService) *PickslipHandler {
	return &PickslipHandler{
		svc: svc,
	}
}

// HandleCreatePickslip godoc
// @Summary      Create a pickslip
// @Tags         pickslips
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePickslipRequest  true  "pickslip with lines"
// @Success      201  {object}  domain.Pickslip
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleCreatePickslip(ctx *gin.Context) {
	var req request.CreatePickslipRequest
	if !bindJSON(ctx, &req) {
		return
	}

	pickslip, err := h.svc.CreatePickslip(ctx.Request.Context(), req.ToDomain(currentUser(ctx).ID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreatePickslip -> h.svc.CreatePickslip", err)
		return
	}

	ctx.JSON(http.StatusCreated, pickslip)
}

// HandleListPickslips godoc
// @Summary      List pickslips
// @Tags         pickslips
// @Produce      json
// @Param        status  query     string  false  "open, completed or cancelled"
// @Param        limit   query     int     false  "page size"
// @Param        offset  query     int     false  "page offset"
// @Success      200  {array}   domain.Pickslip
// @Failure      500  {object}  response.Err
// @Router       /pickslips [get]
// @Security     BearerAuth
func (h *PickslipHandler) HandleListPickslips(ctx *gin.Context) {
	var query request.ListQuery
	if !bindQuery(ctx, &query) {
		return
	}

	pickslips, err := h.svc.ListPickslips(ctx.Request.Context(), query.Status, query.Limit, query.Offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPickslips -> h.svc.ListPickslips", err)
		return
	}

	ctx.JSON(http.StatusOK, pickslips)
}

// HandleGetPickslip godoc
// @Summary      Get a pickslip with its lines
// @Tags         pickslips
// @Produce      json
// @Param        pickslipID  path      int  true  "Pickslip ID"
// @Success      200  {object}  domain.Pickslip
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID} [get]
// @Security     BearerAuth
func (h *PickslipHandler) HandleGetPickslip(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	pickslip, err := h.svc.GetPickslip(ctx.Request.Context(), pickslipID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPickslip -> h.svc.GetPickslip", err)
		return
	}

	ctx.JSON(http.StatusOK, pickslip)
}

// HandleSuggestPicks godoc
// @Summary      FIFO pick suggestions
// @Description  Read-only plan per line: stock held for the pickslip first, then bins oldest first.
// @Tags         pickslips
// @Produce      json
// @Param        pickslipID  path      int  true  "Pickslip ID"
// @Success      200  {array}   domain.PickSuggestion
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID}/picks [get]
// @Security     BearerAuth
func (h *PickslipHandler) HandleSuggestPicks(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	suggestions, err := h.svc.SuggestPicks(ctx.Request.Context(), pickslipID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSuggestPicks -> h.svc.SuggestPicks", err)
		return
	}

	ctx.JSON(http.StatusOK, suggestions)
}

// HandleCompletePickslip godoc
// @Summary      Complete a pickslip
// @Description  Issues every outstanding quantity in one transaction and returns the picks.
// @Tags         pickslips
// @Produce      json
// @Param        pickslipID  path      int  true  "Pickslip ID"
// @Success      200  {object}  domain.Completion
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID}/complete [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleCompletePickslip(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	completion, err := h.svc.Complete(ctx.Request.Context(), pickslipID, currentUser(ctx).ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCompletePickslip -> h.svc.Complete", err)
		return
	}

	ctx.JSON(http.StatusOK, completion)
}

// HandleCancelPickslip godoc
// @Summary      Cancel a pickslip
// @Description  Held stock goes back to its origin bins.
// @Tags         pickslips
// @Produce      json
// @Param        pickslipID  path      int  true  "Pickslip ID"
// @Success      200  {object}  domain.Pickslip
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID}/cancel [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleCancelPickslip(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	pickslip, err := h.svc.Cancel(ctx.Request.Context(), pickslipID, currentUser(ctx).ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCancelPickslip -> h.svc.Cancel", err)
		return
	}

	ctx.JSON(http.StatusOK, pickslip)
}

// HandleHold godoc
// @Summary      Hold stock for a pickslip
// @Description  Takes qty from bins in FIFO order into holdings against the pickslip.
// @Tags         pickslips,holdings
// @Accept       json
// @Produce      json
// @Param        pickslipID  path      int                  true  "Pickslip ID"
// @Param        request     body      request.HoldRequest  true  "part and quantity"
// @Success      201  {array}   domain.Holding
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID}/holdings [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleHold(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.HoldRequest
	if !bindJSON(ctx, &req) {
		return
	}

	holdings, err := h.svc.Hold(ctx.Request.Context(), pickslipID, req.PartID, req.Qty, currentUser(ctx).ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleHold -> h.svc.Hold", err)
		return
	}

	ctx.JSON(http.StatusCreated, holdings)
}

// HandleListHoldings godoc
// @Summary      Holdings of a pickslip
// @Tags         pickslips,holdings
// @Produce      json
// @Param        pickslipID  path      int  true  "Pickslip ID"
// @Success      200  {array}   domain.Holding
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /pickslips/{pickslipID}/holdings [get]
// @Security     BearerAuth
func (h *PickslipHandler) HandleListHoldings(ctx *gin.Context) {
	pickslipID, respErr := parseID(ctx, "pickslipID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	holdings, err := h.svc.Holdings(ctx.Request.Context(), pickslipID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListHoldings -> h.svc.Holdings", err)
		return
	}

	ctx.JSON(http.StatusOK, holdings)
}

// HandleReleaseHolding godoc
// @Summary      Release a holding
// @Description  Returns the held quantity to its origin bin.
// @Tags         holdings
// @Produce      json
// @Param        holdingID  path      int  true  "Holding ID"
// @Success      200  {object}  domain.Holding
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /holdings/{holdingID}/release [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleReleaseHolding(ctx *gin.Context) {
	holdingID, respErr := parseID(ctx, "holdingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	holding, err := h.svc.ReleaseHolding(ctx.Request.Context(), holdingID, currentUser(ctx).ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReleaseHolding -> h.svc.ReleaseHolding", err)
		return
	}

	ctx.JSON(http.StatusOK, holding)
}

// HandleTransferHolding godoc
// @Summary      Move held stock to another pickslip
// @Description  A partial quantity splits the holding.
// @Tags         holdings
// @Accept       json
// @Produce      json
// @Param        holdingID  path      int                             true  "Holding ID"
// @Param        request    body      request.TransferHoldingRequest  true  "target pickslip and quantity"
// @Success      200  {object}  response.HoldingTransferResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /holdings/{holdingID}/transfer [post]
// @Security     BearerAuth
func (h *PickslipHandler) HandleTransferHolding(ctx *gin.Context) {
	holdingID, respErr := parseID(ctx, "holdingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TransferHoldingRequest
	if !bindJSON(ctx, &req) {
		return
	}

	source, moved, err := h.svc.TransferHolding(ctx.Request.Context(), holdingID, req.PickslipID, req.Qty)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTransferHolding -> h.svc.TransferHolding", err)
		return
	}

	ctx.JSON(http.StatusOK, response.HoldingTransferResponse{
		Source: source,
		Moved:  moved,
	})
}
