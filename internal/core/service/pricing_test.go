package service_test

import (
	"testing"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/service"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Cmp(decimal.MustParse(want)) == 0, "want %s, got %s", want, got)
}

func item(price string, qty uint32) domain.OrderItem {
	return domain.OrderItem{UnitPrice: decimal.MustParse(price), Quantity: qty}
}

func TestPricing_Quote(t *testing.T) {
	pricing, err := service.ParsePricing("0.05", "100", "1000", "50", "BDT")
	require.NoError(t, err)

	type quoteTest struct {
		name     string
		items    []domain.OrderItem
		discount string

		expSubtotal string
		expTax      string
		expShipping string
		expTotal    string
	}

	tests := []quoteTest{
		{
			name:        "free shipping at threshold",
			items:       []domain.OrderItem{item("500", 2)},
			discount:    "0",
			expSubtotal: "1000",
			expTax:      "50",
			expShipping: "0",
			expTotal:    "1050",
		},
		{
			name:        "shipping charged below threshold",
			items:       []domain.OrderItem{item("450", 1)},
			discount:    "0",
			expSubtotal: "450",
			expTax:      "22.50",
			expShipping: "100",
			expTotal:    "572.50",
		},
		{
			name:        "discount shrinks taxable amount",
			items:       []domain.OrderItem{item("500", 2)},
			discount:    "100",
			expSubtotal: "1000",
			expTax:      "45",
			expShipping: "100",
			expTotal:    "1045",
		},
		{
			name:        "tax tie rounds up, not to even",
			items:       []domain.OrderItem{item("10.10", 1)},
			discount:    "0",
			expSubtotal: "10.10",
			expTax:      "0.51",
			expShipping: "100",
			expTotal:    "110.61",
		},
		{
			name:        "discount equal to subtotal",
			items:       []domain.OrderItem{item("500", 1)},
			discount:    "500",
			expSubtotal: "500",
			expTax:      "0",
			expShipping: "100",
			expTotal:    "100",
		},
		{
			name:        "mixed cart sums exact line totals",
			items:       []domain.OrderItem{item("19.99", 3), item("5.25", 2)},
			discount:    "0",
			expSubtotal: "70.47",
			expTax:      "3.52",
			expShipping: "100",
			expTotal:    "173.99",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			totals, err := pricing.Quote(test.items, decimal.MustParse(test.discount))
			require.NoError(t, err)

			assertMoney(t, test.expSubtotal, totals.Subtotal)
			assertMoney(t, test.expTax, totals.Tax)
			assertMoney(t, test.expShipping, totals.ShippingCost)
			assertMoney(t, test.expTotal, totals.Total)
		})
	}
}

func TestPricing_QuoteErrors(t *testing.T) {
	pricing, err := service.ParsePricing("0.05", "100", "1000", "50", "BDT")
	require.NoError(t, err)

	type quoteErrTest struct {
		name     string
		items    []domain.OrderItem
		discount string
		expError error
	}

	tests := []quoteErrTest{
		{
			name:     "empty cart",
			items:    nil,
			discount: "0",
			expError: domain.ErrEmptyOrder,
		},
		{
			name:     "negative discount",
			items:    []domain.OrderItem{item("500", 1)},
			discount: "-1",
			expError: domain.ErrNegativeDiscount,
		},
		{
			name:     "discount exceeds subtotal",
			items:    []domain.OrderItem{item("500", 1)},
			discount: "500.01",
			expError: domain.ErrDiscountTooLarge,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := pricing.Quote(test.items, decimal.MustParse(test.discount))
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestPricing_POS(t *testing.T) {
	pricing, err := service.ParsePricing("0.05", "100", "1000", "50", "BDT")
	require.NoError(t, err)

	totals, err := pricing.POS().Quote([]domain.OrderItem{item("500", 2)}, decimal.Zero)
	require.NoError(t, err)

	assertMoney(t, "1000", totals.Subtotal)
	assertMoney(t, "0", totals.Tax)
	assertMoney(t, "0", totals.ShippingCost)
	assertMoney(t, "1000", totals.Total)
	assert.Equal(t, "BDT", pricing.POS().Currency)
}
