package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type PartService interface {
	CreatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	GetPart(ctx context.Context, id uint) (domain.Part, error)
	ListParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error)
	UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	GetStock(ctx context.Context, partID uint) (domain.PartStock, error)
}

type PartHandler struct {
	svc PartService
}

func NewPartHandler(svc PartService) *PartHandler {
	return &PartHandler{
		svc: svc,
	}
}

// HandleListParts godoc
// @Summary      List parts
// @Tags         parts
// @Produce      json
// @Param        q       query     string  false  "part number or description contains"
// @Param        limit   query     int     false  "page size"
// @Param        offset  query     int     false  "page offset"
// @Success      200  {array}   domain.Part
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts [get]
// @Security     BearerAuth
func (h *PartHandler) HandleListParts(ctx *gin.Context) {
	var query request.PartQuery
	if !bindQuery(ctx, &query) {
		return
	}

	parts, err := h.svc.ListParts(ctx.Request.Context(), domain.PartFilter{
		Query:  query.Query,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListParts -> h.svc.ListParts", err)
		return
	}

	ctx.JSON(http.StatusOK, parts)
}

// HandleGetPart godoc
// @Summary      Get a part
// @Tags         parts
// @Produce      json
// @Param        partID  path      int  true  "Part ID"
// @Success      200  {object}  domain.Part
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts/{partID} [get]
// @Security     BearerAuth
func (h *PartHandler) HandleGetPart(ctx *gin.Context) {
	partID, respErr := parseID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	part, err := h.svc.GetPart(ctx.Request.Context(), partID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPart -> h.svc.GetPart", err)
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleCreatePart godoc
// @Summary      Create a part
// @Description  Part numbers are stored upper-cased and must be unique.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        request  body      request.PartRequest  true  "part"
// @Success      201  {object}  domain.Part
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts [post]
// @Security     BearerAuth
func (h *PartHandler) HandleCreatePart(ctx *gin.Context) {
	var req request.PartRequest
	if !bindJSON(ctx, &req) {
		return
	}

	part, err := h.svc.CreatePart(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreatePart -> h.svc.CreatePart", err)
		return
	}

	ctx.JSON(http.StatusCreated, part)
}

// HandleUpdatePart godoc
// @Summary      Update a part
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        partID   path      int                  true  "Part ID"
// @Param        request  body      request.PartRequest  true  "part"
// @Success      200  {object}  domain.Part
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts/{partID} [put]
// @Security     BearerAuth
func (h *PartHandler) HandleUpdatePart(ctx *gin.Context) {
	partID, respErr := parseID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PartRequest
	if !bindJSON(ctx, &req) {
		return
	}

	part := req.ToDomain()
	part.ID = partID
	updated, err := h.svc.UpdatePart(ctx.Request.Context(), part)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdatePart -> h.svc.UpdatePart", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleGetPartStock godoc
// @Summary      Stock on hand for a part
// @Description  On-hand quantity per bin and batch in FIFO order, plus the total.
// @Tags         parts,stock
// @Produce      json
// @Param        partID  path      int  true  "Part ID"
// @Success      200  {object}  domain.PartStock
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts/{partID}/stock [get]
// @Security     BearerAuth
func (h *PartHandler) HandleGetPartStock(ctx *gin.Context) {
	partID, respErr := parseID(ctx, "partID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stock, err := h.svc.GetStock(ctx.Request.Context(), partID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPartStock -> h.svc.GetStock", err)
		return
	}

	ctx.JSON(http.StatusOK, stock)
}
