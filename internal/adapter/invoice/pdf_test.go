package invoice_test

import (
	"testing"
	"time"

	"github.com/bazarhat/shopcore/internal/adapter/invoice"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoice(t *testing.T) {
	order := &domain.Order{
		ID:            7,
		Number:        "6b1e7c52-9f4b-4c2f-8a74-0d6b1a2c3d4e",
		UserID:        1,
		Status:        domain.OrderStatusProcessing,
		PaymentStatus: domain.PaymentStatusPaid,
		Subtotal:      decimal.MustParse("1000"),
		Discount:      decimal.Zero,
		Tax:           decimal.MustParse("50"),
		ShippingCost:  decimal.Zero,
		Total:         decimal.MustParse("1050"),
		Currency:      "BDT",
		ShippingAddress: domain.Address{
			Line1: "12 Station Road", City: "Mymensingh", PostalCode: "2200",
		},
		CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 2, UnitPrice: decimal.MustParse("500")},
		},
		Payments: []domain.PaymentDetail{
			{Medium: domain.PaymentMediumBkash, AdvancePaid: decimal.MustParse("1050"),
				PayableAmount: decimal.Zero, PaidAt: time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC)},
		},
		User: &domain.User{Name: "Test Customer", Email: "test@example.com"},
	}

	pdf, err := invoice.NewRenderer().RenderInvoice(order)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
