package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// RecordPayment appends one installment to an order's ledger.
//
// The balance math runs inside the repository's append transaction while the
// order row is locked, so two concurrent installments cannot both read the
// same remaining balance and both pass the fully-paid guard. Reaching zero
// remaining flips payment_status to paid exactly once, and moves a pending
// order to processing.
func (s *Service) RecordPayment(ctx context.Context, actor domain.Actor, req *domain.PaymentRequest) (*domain.PaymentDetail, error) {
	if err := req.ValidateRefs(); err != nil {
		return nil, err
	}
	if req.Amount.Sign() <= 0 {
		return nil, domain.ErrNonPositivePayment
	}

	detail, err := s.repo.AppendPayment(ctx, req.OrderID,
		func(order *domain.Order, alreadyPaid decimal.Decimal) (*domain.PaymentDetail, error) {
			if order.Status == domain.OrderStatusCancelled || order.Status == domain.OrderStatusRefunded {
				return nil, domain.ErrOrderNotPayable
			}

			remaining, err := order.Total.Sub(alreadyPaid)
			if err != nil {
				return nil, fmt.Errorf("math error: %w", err)
			}
			if remaining.Sign() <= 0 {
				return nil, domain.ErrOrderFullyPaid
			}
			if alreadyPaid.IsZero() && req.Amount.Cmp(s.pricing.MinAdvance) < 0 {
				return nil, domain.ErrAdvanceTooSmall
			}
			if req.Amount.Cmp(remaining) > 0 {
				return nil, domain.ErrOverpayment
			}

			payable, err := remaining.Sub(req.Amount)
			if err != nil {
				return nil, fmt.Errorf("math error: %w", err)
			}
			if payable.IsNeg() {
				// guarded above; a negative balance here is a defect
				s.logger.Error("negative remaining balance",
					zap.Uint64("order", order.ID),
					zap.String("payable", payable.String()))
				return nil, domain.ErrInternal
			}

			if payable.IsZero() {
				order.PaymentStatus = domain.PaymentStatusPaid
				if order.Status == domain.OrderStatusPending {
					order.Status = domain.OrderStatusProcessing
				}
			}

			return &domain.PaymentDetail{
				OrderID:       order.ID,
				UserID:        actor.UserID,
				Medium:        req.Medium,
				AdvancePaid:   req.Amount,
				PayableAmount: payable,
				AccNo:         req.AccNo,
				TrxID:         req.TrxID,
				Bank:          req.Bank,
				PaidAt:        time.Now(),
			}, nil
		})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
