package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")

	ErrPartNumberExists = errors.New("part number already exists")
	ErrPartNotFound     = errors.New("part not found")

	ErrBinCodeExists       = errors.New("bin code already exists in this warehouse")
	ErrBinNotFound         = errors.New("bin not found")
	ErrBinInactive         = errors.New("bin is inactive")
	ErrBinHasStock         = errors.New("bin still has stock on hand")
	ErrBinCapacityExceeded = errors.New("bin capacity exceeded")
	ErrBinStockNotFound    = errors.New("no stock for part and batch in bin")

	ErrReceiptNotFound       = errors.New("receipt not found")
	ErrReceiptLineNotFound   = errors.New("receipt line not found")
	ErrReceiptNotOpen        = errors.New("receipt is not open")
	ErrReceiptHasAllocations = errors.New("receipt already has allocations")
	ErrOverAllocation        = errors.New("allocation exceeds received quantity")

	ErrInsufficientStock = errors.New("insufficient stock")

	ErrPickslipNotFound       = errors.New("pickslip not found")
	ErrPickslipNotOpen        = errors.New("pickslip is not open")
	ErrPartNotOnPickslip      = errors.New("part is not on the pickslip")
	ErrHoldExceedsOutstanding = errors.New("hold exceeds outstanding quantity")
	ErrHoldingNotFound        = errors.New("holding not found")
	ErrHoldingNotHeld         = errors.New("holding is not held")
	ErrHoldingQtyExceeded     = errors.New("quantity exceeds held quantity")
	ErrSamePickslip           = errors.New("holding already belongs to the pickslip")

	ErrLeadNotFound           = errors.New("lead not found")
	ErrQuoteNotFound          = errors.New("quote not found")
	ErrInvalidQuoteTransition = errors.New("invalid quote status transition")
)

func asPgErr(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := asPgErr(err)

	return ok && pgErr.Code == pgerrcode.UniqueViolation &&
		(pgErr.ConstraintName == constraint || strings.Contains(pgErr.Message, `"`+constraint+`"`))
}

func isForeignKeyViolation(err error, column string) bool {
	pgErr, ok := asPgErr(err)

	return ok && pgErr.Code == pgerrcode.ForeignKeyViolation && strings.Contains(pgErr.Detail, "("+column+")")
}

func nullableID(id uint) *uint {
	if id == 0 {
		return nil
	}

	return &id
}
