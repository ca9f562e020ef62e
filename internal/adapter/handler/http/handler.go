package http

import (
	"errors"
	"net/http"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrBadRequest:          http.StatusBadRequest,
	domain.ErrEmptyOrder:          http.StatusBadRequest,
	domain.ErrNegativeDiscount:    http.StatusBadRequest,
	domain.ErrDiscountTooLarge:    http.StatusBadRequest,
	domain.ErrNonPositivePayment:  http.StatusBadRequest,
	domain.ErrAdvanceTooSmall:     http.StatusBadRequest,
	domain.ErrBankDetailsRequired: http.StatusBadRequest,
	domain.ErrTrxIDRequired:       http.StatusBadRequest,
	domain.ErrUnknownMedium:       http.StatusBadRequest,
	domain.ErrUnknownStatus:       http.StatusBadRequest,

	domain.ErrOrderFullyPaid:    http.StatusConflict,
	domain.ErrOrderNotPayable:   http.StatusConflict,
	domain.ErrOverpayment:       http.StatusConflict,
	domain.ErrInsufficientStock: http.StatusConflict,
	domain.ErrOrderTerminal:     http.StatusConflict,
	domain.ErrInvalidTransition: http.StatusConflict,
}

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleError maps a core error onto a status code and the response
// envelope. Unknown errors are logged in full and answered with a generic
// message so internals never leak to the caller.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	var itemErr *domain.ItemValidationError
	if errors.As(err, &itemErr) {
		status := http.StatusUnprocessableEntity
		if itemErr.StockConflict() {
			status = http.StatusConflict
		}
		ctx.JSON(status, response{Success: false, Msg: itemErr.Error(), Data: itemErr.Failures})
		return
	}

	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			ctx.JSON(status, response{Success: false, Msg: sentinel.Error()})
			return
		}
	}

	h.logger.Error("error processing request", zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, response{Success: false, Msg: domain.ErrInternal.Error()})
}

// handleValidationError answers a request-parsing failure.
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, response{Success: false, Msg: err.Error()})
}

// handleAbort ends the request from middleware with an error status.
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithStatusJSON(statusCode, response{Success: false, Msg: err.Error()})
}

func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, msg string, status int) {
	ctx.JSON(status, response{Success: true, Msg: msg, Data: data})
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, "", http.StatusOK)
}
