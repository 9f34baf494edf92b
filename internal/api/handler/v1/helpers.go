package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetdepot/depot/internal/api/handler/v1/response"
	"github.com/fleetdepot/depot/internal/api/middleware"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/service"
)

const ctxKeyUser = "user"

var errNoUser = errors.New("user is not authenticated")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

var notFoundErrs = []error{
	service.ErrUserNotFound,
	service.ErrPartNotFound,
	service.ErrBinNotFound,
	service.ErrBinStockNotFound,
	service.ErrReceiptNotFound,
	service.ErrReceiptLineNotFound,
	service.ErrPickslipNotFound,
	service.ErrHoldingNotFound,
	service.ErrLeadNotFound,
	service.ErrQuoteNotFound,
}

var badRequestErrs = []error{
	service.ErrUserEmailExists,
	service.ErrPartNumberExists,
	service.ErrBinCodeExists,
	service.ErrBinInactive,
	service.ErrBinHasStock,
	service.ErrBinCapacityExceeded,
	service.ErrReceiptNotOpen,
	service.ErrReceiptHasAllocations,
	service.ErrOverAllocation,
	service.ErrInsufficientStock,
	service.ErrPickslipNotOpen,
	service.ErrPartNotOnPickslip,
	service.ErrHoldExceedsOutstanding,
	service.ErrHoldingNotHeld,
	service.ErrHoldingQtyExceeded,
	service.ErrSamePickslip,
	service.ErrInvalidQuoteTransition,
}

// renderServiceErr maps service sentinels to 404 or 400 and anything else to 500.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrResourceNotFound(target))
			return
		}
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrBadRequest(target))
			return
		}
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s", param))
	}

	return uint(id), nil
}

// bindJSON decodes the body and runs its Validate method.
func bindJSON(ctx *gin.Context, req interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

func bindQuery(ctx *gin.Context, query any) bool {
	if err := ctx.ShouldBindQuery(query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.CtxKeyUserID)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errNoUser)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errNoUser)
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("uSvc.GetUser -> %w", err))
	}

	return user, nil
}

// RequireRoles loads the authenticated user and rejects it unless it has one
// of roles. With no roles any authenticated user passes.
func RequireRoles(uSvc UserService, roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, respErr := getUserFromContext(ctx, uSvc)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}
		if len(roles) > 0 && !user.HasRole(roles...) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %s may not access %s", user.Role, ctx.FullPath())))
			return
		}

		ctx.Set(ctxKeyUser, user)
		ctx.Next()
	}
}

// currentUser returns the user stored by RequireRoles.
func currentUser(ctx *gin.Context) domain.User {
	user, _ := ctx.MustGet(ctxKeyUser).(domain.User)

	return user
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
