package service

import (
	"context"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/utils"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// Checkout prices a cart and persists the order aggregate atomically.
// The order starts in pending/unpaid; stock is validated but not reserved.
func (s *Service) Checkout(ctx context.Context, actor domain.Actor, req *domain.OrderRequest) (*domain.Order, error) {
	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order, err := s.buildOrder(actor, req, items, s.pricing)
	if err != nil {
		return nil, err
	}

	newOrder, err := s.repo.CreateOrder(ctx, order, nil, false)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

// CreatePOSOrder is the counter sale: priced with the POS tariff (no tax,
// no shipping), paid in full and fulfilled on the spot. The order, its
// items, the opening ledger row and the stock decrements commit together;
// a failed conditional decrement aborts the whole sale.
func (s *Service) CreatePOSOrder(ctx context.Context, actor domain.Actor, req *domain.OrderRequest) (*domain.Order, error) {
	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	medium := domain.PaymentMedium(req.PaymentMethod)
	if medium == "" {
		medium = domain.PaymentMediumCash
	}
	if !medium.Valid() {
		return nil, domain.ErrUnknownMedium
	}

	order, err := s.buildOrder(actor, req, items, s.posPricing)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusDelivered
	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentMethod = string(medium)

	payment := &domain.PaymentDetail{
		UserID:        actor.UserID,
		Medium:        medium,
		AdvancePaid:   order.Total,
		PayableAmount: decimal.Zero,
		DeliveredBy:   actor.UserID,
		PaidAt:        order.CreatedAt,
	}

	newOrder, err := s.repo.CreateOrder(ctx, order, payment, true)
	if err != nil {
		s.logger.Error("Create POS order", zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

// resolveItems validates the cart against the catalog and captures unit
// prices. Every violation is collected so the caller sees all of them.
func (s *Service) resolveItems(ctx context.Context, reqs []domain.ItemRequest) ([]domain.OrderItem, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	ids := make([]uint64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ProductID)
	}

	products, err := s.repo.GetProducts(ctx, ids)
	if err != nil {
		s.logger.Error("Get products", zap.Error(err))
		return nil, domain.ErrInternal
	}

	var failures []domain.ItemFailure
	items := make([]domain.OrderItem, 0, len(reqs))
	for _, r := range reqs {
		if r.Quantity == 0 {
			failures = append(failures, domain.ItemFailure{
				ProductID: r.ProductID, Reason: domain.ItemBadQuantity})
			continue
		}
		p, ok := products[r.ProductID]
		if !ok {
			failures = append(failures, domain.ItemFailure{
				ProductID: r.ProductID, Reason: domain.ItemNotFound})
			continue
		}
		if p.Status != domain.ProductStatusActive {
			failures = append(failures, domain.ItemFailure{
				ProductID: r.ProductID, Reason: domain.ItemInactive})
			continue
		}
		if p.StockQuantity < r.Quantity {
			failures = append(failures, domain.ItemFailure{
				ProductID: r.ProductID,
				Reason:    domain.ItemInsufficientStock,
				Available: p.StockQuantity,
				Requested: r.Quantity,
			})
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			UnitPrice: p.Price,
		})
	}
	if len(failures) > 0 {
		return nil, &domain.ItemValidationError{Failures: failures}
	}
	return items, nil
}

func (s *Service) buildOrder(actor domain.Actor, req *domain.OrderRequest,
	items []domain.OrderItem, pricing PricingConfig) (*domain.Order, error) {
	totals, err := pricing.Quote(items, req.Discount)
	if err != nil {
		return nil, err
	}
	if totals.Total.IsNeg() {
		// a negative total is a defect, not user input
		s.logger.Error("computed negative order total",
			zap.String("total", totals.Total.String()),
			zap.Uint64("user", actor.UserID))
		return nil, domain.ErrInternal
	}

	now := time.Now()
	return &domain.Order{
		Number:          utils.NewOrderNumber(),
		UserID:          actor.UserID,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		ShippingCost:    totals.ShippingCost,
		Total:           totals.Total,
		Currency:        pricing.Currency,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}, nil
}

// GetOrder returns the full aggregate, owner-scoped unless the actor holds
// elevated authorization.
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() && order.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListMyOrders(ctx context.Context, actor domain.Actor) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("List orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter, page int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	list, count, err := s.repo.ListOrders(ctx, filter, page)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, 0, err
	}
	return list, count, nil
}

// ChangeOrderStatus applies a fulfillment transition. Terminal orders reject
// everything; payment_status moves only when the order is refunded.
func (s *Service) ChangeOrderStatus(ctx context.Context, orderID uint64, target domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(order.Status, target); err != nil {
		return nil, err
	}

	var paymentStatus *domain.PaymentStatus
	if target == domain.OrderStatusRefunded {
		refunded := domain.PaymentStatusRefunded
		paymentStatus = &refunded
	}

	err = s.repo.UpdateOrderStatus(ctx, orderID, order.Status, target, paymentStatus)
	if err != nil {
		return nil, err
	}
	return s.repo.ReadOrder(ctx, orderID)
}
