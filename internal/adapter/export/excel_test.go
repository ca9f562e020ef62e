package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/bazarhat/shopcore/internal/adapter/export"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportReport(t *testing.T) {
	report := &domain.SalesReport{
		From:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Orders: 3,
		StatusCounts: map[domain.OrderStatus]int64{
			domain.OrderStatusDelivered: 2,
			domain.OrderStatusPending:   1,
		},
		PaidOrders:    2,
		GrossSales:    decimal.MustParse("3150"),
		NetSales:      decimal.MustParse("2900"),
		TotalDiscount: decimal.MustParse("100"),
		AverageOrder:  decimal.MustParse("1050"),
		UnitsSold:     6,
		ProductsSold:  2,
		Buyers:        3,
		Mediums: []domain.MediumTotal{
			{Medium: domain.PaymentMediumBkash, Payments: 2, Amount: decimal.MustParse("2100")},
			{Medium: domain.PaymentMediumCash, Payments: 1, Amount: decimal.MustParse("1050")},
		},
	}

	data, err := export.NewExporter().ExportReport(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sales Report", title)

	orders, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", orders)

	medium, err := f.GetCellValue("Payment Mediums", "A2")
	require.NoError(t, err)
	assert.Equal(t, "bkash", medium)
}
