package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/request"
	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/domain"
)

type ETLJob interface {
	RunOnce(ctx context.Context) (domain.ETLRun, error)
	Runs(ctx context.Context, limit int) ([]domain.ETLRun, error)
}

type ETLHandler struct {
	job ETLJob
}

func NewETLHandler(job ETLJob) *ETLHandler {
	return &ETLHandler{
		job: job,
	}
}

// HandleListRuns godoc
// @Summary      Recent parts feed runs
// @Tags         etl
// @Produce      json
// @Param        limit  query     int  false  "number of runs"
// @Success      200  {array}   domain.ETLRun
// @Failure      500  {object}  response.Err
// @Router       /etl/runs [get]
// @Security     BearerAuth
func (h *ETLHandler) HandleListRuns(ctx *gin.Context) {
	var query request.ListQuery
	if !bindQuery(ctx, &query) {
		return
	}

	runs, err := h.job.Runs(ctx.Request.Context(), query.Limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListRuns -> h.job.Runs", err)
		return
	}

	ctx.JSON(http.StatusOK, runs)
}

// HandleRunNow godoc
// @Summary      Run the parts feed now
// @Description  Copies changed source rows into staging and merges them into parts. Admin only.
// @Tags         etl
// @Produce      json
// @Success      200  {object}  domain.ETLRun
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /etl/runs [post]
// @Security     BearerAuth
func (h *ETLHandler) HandleRunNow(ctx *gin.Context) {
	run, err := h.job.RunOnce(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleRunNow -> h.job.RunOnce batch %s -> %w", run.BatchID, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, run)
}
