package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port/mock"
	"github.com/bazarhat/shopcore/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func activeProduct(id uint64, price string, stock uint32) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          "product",
		Price:         decimal.MustParse(price),
		StockQuantity: stock,
		Status:        domain.ProductStatusActive,
	}
}

func TestService_Checkout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	actor := domain.Actor{UserID: 1, Role: domain.RoleCustomer}

	t.Run("Checkout good", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().GetProducts(gomock.Any(), []uint64{10}).
			Return(map[uint64]*domain.Product{10: activeProduct(10, "500", 5)}, nil)
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Nil(), false).
			DoAndReturn(func(_ context.Context, order *domain.Order,
				_ *domain.PaymentDetail, _ bool) (*domain.Order, error) {
				return order, nil
			})

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		order, err := s.Checkout(context.Background(), actor, &domain.OrderRequest{
			Items:    []domain.ItemRequest{{ProductID: 10, Quantity: 2}},
			Discount: decimal.Zero,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, order.Number)
		assert.Equal(t, actor.UserID, order.UserID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, domain.PaymentStatusUnpaid, order.PaymentStatus)
		assert.Equal(t, "BDT", order.Currency)
		assertMoney(t, "1000", order.Subtotal)
		assertMoney(t, "50", order.Tax)
		assertMoney(t, "0", order.ShippingCost)
		assertMoney(t, "1050", order.Total)
		require.Len(t, order.Items, 1)
		assertMoney(t, "500", order.Items[0].UnitPrice)
	})

	t.Run("Checkout collects every line failure", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().GetProducts(gomock.Any(), []uint64{10, 11, 12, 13}).
			Return(map[uint64]*domain.Product{
				10: activeProduct(10, "500", 1),
				11: {ID: 11, Price: decimal.MustParse("10"), StockQuantity: 5,
					Status: domain.ProductStatusInactive},
				13: activeProduct(13, "20", 5),
			}, nil)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.Checkout(context.Background(), actor, &domain.OrderRequest{
			Items: []domain.ItemRequest{
				{ProductID: 10, Quantity: 3}, // only 1 in stock
				{ProductID: 11, Quantity: 1}, // inactive
				{ProductID: 12, Quantity: 1}, // unknown
				{ProductID: 13, Quantity: 0}, // zero quantity
			},
		})

		var itemErr *domain.ItemValidationError
		require.ErrorAs(t, err, &itemErr)
		require.Len(t, itemErr.Failures, 4)
		assert.True(t, itemErr.StockConflict())

		reasons := map[uint64]domain.ItemFailureReason{}
		for _, f := range itemErr.Failures {
			reasons[f.ProductID] = f.Reason
		}
		assert.Equal(t, domain.ItemInsufficientStock, reasons[10])
		assert.Equal(t, domain.ItemInactive, reasons[11])
		assert.Equal(t, domain.ItemNotFound, reasons[12])
		assert.Equal(t, domain.ItemBadQuantity, reasons[13])
	})

	t.Run("Checkout empty cart", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.Checkout(context.Background(), actor, &domain.OrderRequest{})
		assert.Equal(t, domain.ErrEmptyOrder, err)
	})
}

func TestService_CreatePOSOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	admin := domain.Actor{UserID: 9, Role: domain.RoleAdmin}

	t.Run("POS sale paid in full", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().GetProducts(gomock.Any(), []uint64{10}).
			Return(map[uint64]*domain.Product{10: activeProduct(10, "500", 5)}, nil)
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil()), true).
			DoAndReturn(func(_ context.Context, order *domain.Order,
				payment *domain.PaymentDetail, _ bool) (*domain.Order, error) {
				assert.Equal(t, domain.PaymentMediumCash, payment.Medium)
				assert.True(t, payment.AdvancePaid.Cmp(order.Total) == 0)
				assert.True(t, payment.PayableAmount.IsZero())
				assert.Equal(t, admin.UserID, payment.DeliveredBy)
				return order, nil
			})

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		order, err := s.CreatePOSOrder(context.Background(), admin, &domain.OrderRequest{
			Items: []domain.ItemRequest{{ProductID: 10, Quantity: 2}},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.OrderStatusDelivered, order.Status)
		assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
		assert.Equal(t, string(domain.PaymentMediumCash), order.PaymentMethod)
		// counter sale carries no tax and no shipping
		assertMoney(t, "0", order.Tax)
		assertMoney(t, "0", order.ShippingCost)
		assertMoney(t, "1000", order.Total)
	})

	t.Run("POS unknown medium", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().GetProducts(gomock.Any(), []uint64{10}).
			Return(map[uint64]*domain.Product{10: activeProduct(10, "500", 5)}, nil)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.CreatePOSOrder(context.Background(), admin, &domain.OrderRequest{
			Items:         []domain.ItemRequest{{ProductID: 10, Quantity: 1}},
			PaymentMethod: "paypal",
		})
		assert.Equal(t, domain.ErrUnknownMedium, err)
	})

	t.Run("POS stock conflict aborts the sale", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().GetProducts(gomock.Any(), []uint64{10}).
			Return(map[uint64]*domain.Product{10: activeProduct(10, "500", 5)}, nil)
		repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any(), true).
			Return(nil, domain.ErrInsufficientStock)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.CreatePOSOrder(context.Background(), admin, &domain.OrderRequest{
			Items: []domain.ItemRequest{{ProductID: 10, Quantity: 2}},
		})
		assert.Equal(t, domain.ErrInsufficientStock, err)
	})
}

func TestService_GetOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	order := &domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusPending}

	type getOrderTest struct {
		name     string
		actor    domain.Actor
		expError error
	}

	tests := []getOrderTest{
		{
			name:     "owner reads own order",
			actor:    domain.Actor{UserID: 1, Role: domain.RoleCustomer},
			expError: nil,
		},
		{
			name:     "stranger is refused",
			actor:    domain.Actor{UserID: 2, Role: domain.RoleCustomer},
			expError: domain.ErrForbidden,
		},
		{
			name:     "admin reads any order",
			actor:    domain.Actor{UserID: 2, Role: domain.RoleAdmin},
			expError: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(order, nil)

			s, err := service.NewService(repo, ts, testPricing(t), logger)
			require.NoError(t, err)

			result, err := s.GetOrder(context.Background(), test.actor, 7)
			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.Equal(t, order, result)
			}
		})
	}
}

func TestService_ChangeOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type changeStatusTest struct {
		name     string
		current  domain.OrderStatus
		target   domain.OrderStatus
		mock     prepareMocks
		expError error
	}

	tests := []changeStatusTest{
		{
			name:    "pending to processing",
			current: domain.OrderStatusPending,
			target:  domain.OrderStatusProcessing,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(7),
					domain.OrderStatusPending, domain.OrderStatusProcessing, gomock.Nil()).
					Return(nil)
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).
					Return(&domain.Order{ID: 7, Status: domain.OrderStatusProcessing}, nil)
			},
			expError: nil,
		},
		{
			name:    "refund flips payment status",
			current: domain.OrderStatusShipped,
			target:  domain.OrderStatusRefunded,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(7),
					domain.OrderStatusShipped, domain.OrderStatusRefunded, gomock.Not(gomock.Nil())).
					Return(nil)
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).
					Return(&domain.Order{ID: 7, Status: domain.OrderStatusRefunded,
						PaymentStatus: domain.PaymentStatusRefunded}, nil)
			},
			expError: nil,
		},
		{
			name:     "delivered is terminal",
			current:  domain.OrderStatusDelivered,
			target:   domain.OrderStatusPending,
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrOrderTerminal,
		},
		{
			name:     "skipping a step is refused",
			current:  domain.OrderStatusPending,
			target:   domain.OrderStatusShipped,
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrInvalidTransition,
		},
		{
			name:     "unknown target status",
			current:  domain.OrderStatusPending,
			target:   domain.OrderStatus("misplaced"),
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrUnknownStatus,
		},
		{
			name:    "concurrent transition loses the race",
			current: domain.OrderStatusPending,
			target:  domain.OrderStatusProcessing,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().UpdateOrderStatus(gomock.Any(), uint64(7),
					domain.OrderStatusPending, domain.OrderStatusProcessing, gomock.Nil()).
					Return(domain.ErrConflictingData)
			},
			expError: domain.ErrConflictingData,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)

			repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).
				Return(&domain.Order{ID: 7, Status: test.current}, nil)
			test.mock(repo)

			s, err := service.NewService(repo, ts, testPricing(t), logger)
			require.NoError(t, err)

			result, err := s.ChangeOrderStatus(context.Background(), 7, test.target)
			if !errors.Is(err, test.expError) {
				t.Fatalf("want error %v, got %v", test.expError, err)
			}
			if test.expError == nil {
				assert.Equal(t, test.target, result.Status)
			}
		})
	}
}
