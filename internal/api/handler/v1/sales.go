package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type SalesService interface {
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetLead(ctx context.Context, id uint) (domain.Lead, error)
	ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	GetQuote(ctx context.Context, id uint) (domain.Quote, error)
	ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error)
	ChangeQuoteStatus(ctx context.Context, id uint, status string) (domain.Quote, error)
}

type SalesHandler struct {
	svc SalesService
}

func NewSalesHandler(svc SalesService) *SalesHandler {
	return &SalesHandler{
		svc: svc,
	}
}

// HandleListLeads godoc
// @Summary      List fleet sales leads
// @Tags         sales
// @Produce      json
// @Param        status  query     string  false  "lead status"
// @Param        limit   query     int     false  "page size"
// @Param        offset  query     int     false  "page offset"
// @Success      200  {array}   domain.Lead
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leads [get]
// @Security     BearerAuth
func (h *SalesHandler) HandleListLeads(ctx *gin.Context) {
	var query request.ListQuery
	if !bindQuery(ctx, &query) {
		return
	}

	leads, err := h.svc.ListLeads(ctx.Request.Context(), domain.LeadFilter{
		Status: query.Status,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListLeads -> h.svc.ListLeads", err)
		return
	}

	ctx.JSON(http.StatusOK, leads)
}

// HandleCreateLead godoc
// @Summary      Create a lead
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request  body      request.LeadRequest  true  "lead"
// @Success      201  {object}  domain.Lead
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leads [post]
// @Security     BearerAuth
func (h *SalesHandler) HandleCreateLead(ctx *gin.Context) {
	var req request.LeadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	lead, err := h.svc.CreateLead(ctx.Request.Context(), req.ToDomain(currentUser(ctx).ID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateLead -> h.svc.CreateLead", err)
		return
	}

	ctx.JSON(http.StatusCreated, lead)
}

// HandleGetLead godoc
// @Summary      Get a lead
// @Tags         sales
// @Produce      json
// @Param        leadID  path      int  true  "Lead ID"
// @Success      200  {object}  domain.Lead
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leads/{leadID} [get]
// @Security     BearerAuth
func (h *SalesHandler) HandleGetLead(ctx *gin.Context) {
	leadID, respErr := parseID(ctx, "leadID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	lead, err := h.svc.GetLead(ctx.Request.Context(), leadID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetLead -> h.svc.GetLead", err)
		return
	}

	ctx.JSON(http.StatusOK, lead)
}

// HandleUpdateLead godoc
// @Summary      Update a lead
// @Description  An empty status keeps the current one.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        leadID   path      int                  true  "Lead ID"
// @Param        request  body      request.LeadRequest  true  "lead"
// @Success      200  {object}  domain.Lead
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /leads/{leadID} [put]
// @Security     BearerAuth
func (h *SalesHandler) HandleUpdateLead(ctx *gin.Context) {
	leadID, respErr := parseID(ctx, "leadID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LeadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	lead := req.ToDomain(currentUser(ctx).ID)
	lead.ID = leadID
	updated, err := h.svc.UpdateLead(ctx.Request.Context(), lead)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateLead -> h.svc.UpdateLead", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListQuotes godoc
// @Summary      List quotes
// @Tags         sales
// @Produce      json
// @Param        lead_id  query     int     false  "Lead ID"
// @Param        status   query     string  false  "quote status"
// @Param        limit    query     int     false  "page size"
// @Param        offset   query     int     false  "page offset"
// @Success      200  {array}   domain.Quote
// @Failure      500  {object}  response.Err
// @Router       /quotes [get]
// @Security     BearerAuth
func (h *SalesHandler) HandleListQuotes(ctx *gin.Context) {
	var query request.QuoteQuery
	if !bindQuery(ctx, &query) {
		return
	}

	quotes, err := h.svc.ListQuotes(ctx.Request.Context(), query.LeadID, query.Status, query.Limit, query.Offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListQuotes -> h.svc.ListQuotes", err)
		return
	}

	ctx.JSON(http.StatusOK, quotes)
}

// HandleCreateQuote godoc
// @Summary      Create a quote for a lead
// @Description  Lines are priced as qty x unit_price less discount, rounded to cents. The lead moves to quoted.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateQuoteRequest  true  "quote"
// @Success      201  {object}  domain.Quote
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotes [post]
// @Security     BearerAuth
func (h *SalesHandler) HandleCreateQuote(ctx *gin.Context) {
	var req request.CreateQuoteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	quote, err := h.svc.CreateQuote(ctx.Request.Context(), req.ToDomain(currentUser(ctx).ID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateQuote -> h.svc.CreateQuote", err)
		return
	}

	ctx.JSON(http.StatusCreated, quote)
}

// HandleGetQuote godoc
// @Summary      Get a quote with its lines
// @Tags         sales
// @Produce      json
// @Param        quoteID  path      int  true  "Quote ID"
// @Success      200  {object}  domain.Quote
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotes/{quoteID} [get]
// @Security     BearerAuth
func (h *SalesHandler) HandleGetQuote(ctx *gin.Context) {
	quoteID, respErr := parseID(ctx, "quoteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	quote, err := h.svc.GetQuote(ctx.Request.Context(), quoteID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetQuote -> h.svc.GetQuote", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// HandleChangeQuoteStatus godoc
// @Summary      Move a quote through draft, sent, accepted or rejected
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        quoteID  path      int                         true  "Quote ID"
// @Param        request  body      request.QuoteStatusRequest  true  "new status"
// @Success      200  {object}  domain.Quote
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotes/{quoteID}/status [post]
// @Security     BearerAuth
func (h *SalesHandler) HandleChangeQuoteStatus(ctx *gin.Context) {
	quoteID, respErr := parseID(ctx, "quoteID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.QuoteStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	quote, err := h.svc.ChangeQuoteStatus(ctx.Request.Context(), quoteID, req.Status)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleChangeQuoteStatus -> h.svc.ChangeQuoteStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}
