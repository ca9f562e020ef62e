package http

import (
	"net/http"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type paymentRequest struct {
	OrderID     uint64              `json:"order_id" binding:"required"`
	Medium      string              `json:"payment_medium" binding:"required"`
	AdvancePaid float64             `json:"advance_paid"`
	AccNo       string              `json:"acc_no"`
	TrxID       string              `json:"trx_id"`
	Bank        *domain.BankDetails `json:"bank_details"`
}

// RecordPayment appends a manual installment to an order's ledger.
func (ph *PaymentHandler) RecordPayment(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	req := paymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	amount, err := decimal.NewFromFloat64(req.AdvancePaid)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	detail, err := ph.service.RecordPayment(ctx, actor, &domain.PaymentRequest{
		OrderID: req.OrderID,
		Medium:  domain.PaymentMedium(req.Medium),
		Amount:  amount,
		AccNo:   req.AccNo,
		TrxID:   req.TrxID,
		Bank:    req.Bank,
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, paymentResp{
		ID:            detail.ID,
		Medium:        string(detail.Medium),
		AdvancePaid:   detail.AdvancePaid,
		PayableAmount: detail.PayableAmount,
		AccNo:         detail.AccNo,
		TrxID:         detail.TrxID,
		PaidAt:        detail.PaidAt,
	}, "Payment successful!", http.StatusCreated)
}
