package v1

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/export"
)

type ReportService interface {
	StockOnHand(ctx context.Context, warehouse string) ([]domain.StockOnHandRow, error)
	WriteStockOnHandXLSX(ctx context.Context, w io.Writer, warehouse string) error
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleStockOnHand godoc
// @Summary      Stock on hand report
// @Description  Rows ordered by part number, then FIFO.
// @Tags         reports
// @Produce      json
// @Param        warehouse  query     string  false  "warehouse"
// @Success      200  {array}   domain.StockOnHandRow
// @Failure      500  {object}  response.Err
// @Router       /reports/stock-on-hand [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleStockOnHand(ctx *gin.Context) {
	var query request.ReportQuery
	if !bindQuery(ctx, &query) {
		return
	}

	rows, err := h.svc.StockOnHand(ctx.Request.Context(), query.Warehouse)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleStockOnHand -> h.svc.StockOnHand", err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// HandleStockOnHandXLSX godoc
// @Summary      Stock on hand report as an Excel workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse  query     string  false  "warehouse"
// @Success      200  {file}    file
// @Failure      500  {object}  response.Err
// @Router       /reports/stock-on-hand.xlsx [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleStockOnHandXLSX(ctx *gin.Context) {
	var query request.ReportQuery
	if !bindQuery(ctx, &query) {
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.svc.WriteStockOnHandXLSX(ctx.Request.Context(), &buf, query.Warehouse); err != nil {
		renderServiceErr(ctx, "v1.HandleStockOnHandXLSX -> h.svc.WriteStockOnHandXLSX", err)
		return
	}

	filename := fmt.Sprintf("stock-on-hand-%s.xlsx", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
