package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port/mock"
	"github.com/bazarhat/shopcore/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_SalesReport(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	t.Run("explicit range passes through", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		report := &domain.SalesReport{From: from, To: to, Orders: 3,
			GrossSales: decimal.MustParse("4500")}

		repo.EXPECT().SalesReport(gomock.Any(), from, to).Return(report, nil)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		result, err := s.SalesReport(context.Background(), from, to)
		require.NoError(t, err)
		assert.Equal(t, report, result)
	})

	t.Run("zero range defaults to today", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		repo.EXPECT().SalesReport(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) (*domain.SalesReport, error) {
				assert.Equal(t, 0, from.Hour())
				assert.Equal(t, 0, from.Minute())
				assert.Equal(t, from.AddDate(0, 0, 1), to)
				return &domain.SalesReport{From: from, To: to}, nil
			})

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.SalesReport(context.Background(), time.Time{}, time.Time{})
		assert.NoError(t, err)
	})

	t.Run("inverted range is normalized", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)

		from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		repo.EXPECT().SalesReport(gomock.Any(), from, from.AddDate(0, 0, 1)).
			Return(&domain.SalesReport{}, nil)

		s, err := service.NewService(repo, ts, testPricing(t), logger)
		require.NoError(t, err)

		_, err = s.SalesReport(context.Background(), from, to)
		assert.NoError(t, err)
	})
}

func TestService_OrdersOverview(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	overview := &domain.Overview{
		TotalOrders:     10,
		PaidOrders:      6,
		DeliveredOrders: 4,
		TotalUnits:      25,
		Buyers:          7,
		TotalSales:      decimal.MustParse("12500.50"),
	}
	repo.EXPECT().OrdersOverview(gomock.Any()).Return(overview, nil)

	s, err := service.NewService(repo, ts, testPricing(t), logger)
	require.NoError(t, err)

	result, err := s.OrdersOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, overview, result)
}
