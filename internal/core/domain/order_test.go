package domain_test

import (
	"testing"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	type transitionTest struct {
		name     string
		from     domain.OrderStatus
		to       domain.OrderStatus
		expError error
	}

	tests := []transitionTest{
		{"pending to processing", domain.OrderStatusPending, domain.OrderStatusProcessing, nil},
		{"processing to shipped", domain.OrderStatusProcessing, domain.OrderStatusShipped, nil},
		{"shipped to delivered", domain.OrderStatusShipped, domain.OrderStatusDelivered, nil},
		{"pending cancels", domain.OrderStatusPending, domain.OrderStatusCancelled, nil},
		{"shipped refunds", domain.OrderStatusShipped, domain.OrderStatusRefunded, nil},

		{"pending skips to shipped", domain.OrderStatusPending, domain.OrderStatusShipped, domain.ErrInvalidTransition},
		{"processing goes backward", domain.OrderStatusProcessing, domain.OrderStatusPending, domain.ErrInvalidTransition},

		{"delivered is terminal", domain.OrderStatusDelivered, domain.OrderStatusRefunded, domain.ErrOrderTerminal},
		{"cancelled is terminal", domain.OrderStatusCancelled, domain.OrderStatusPending, domain.ErrOrderTerminal},
		{"refunded is terminal", domain.OrderStatusRefunded, domain.OrderStatusPending, domain.ErrOrderTerminal},

		{"unknown source", domain.OrderStatus("lost"), domain.OrderStatusPending, domain.ErrUnknownStatus},
		{"unknown target", domain.OrderStatusPending, domain.OrderStatus("lost"), domain.ErrUnknownStatus},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expError, domain.CanTransition(test.from, test.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, domain.OrderStatusPending.Terminal())
	assert.False(t, domain.OrderStatusShipped.Terminal())
	assert.True(t, domain.OrderStatusDelivered.Terminal())
	assert.True(t, domain.OrderStatusCancelled.Terminal())
	assert.True(t, domain.OrderStatusRefunded.Terminal())
	assert.False(t, domain.OrderStatus("lost").Terminal())
}

func TestOrderItem_LineTotal(t *testing.T) {
	line, err := domain.OrderItem{
		UnitPrice: decimal.MustParse("19.99"),
		Quantity:  3,
	}.LineTotal()
	require.NoError(t, err)
	assert.True(t, line.Cmp(decimal.MustParse("59.97")) == 0, "got %s", line)
}
