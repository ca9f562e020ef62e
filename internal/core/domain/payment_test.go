package domain_test

import (
	"testing"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPaymentRequest_ValidateRefs(t *testing.T) {
	bank := &domain.BankDetails{BankName: "Janata Bank", Branch: "Mymensingh", RoutingNo: "135274246"}

	type validateTest struct {
		name     string
		req      domain.PaymentRequest
		expError error
	}

	tests := []validateTest{
		{"cash needs nothing", domain.PaymentRequest{Medium: domain.PaymentMediumCash}, nil},
		{"cod needs nothing", domain.PaymentRequest{Medium: domain.PaymentMediumCOD}, nil},
		{"bank with full details", domain.PaymentRequest{Medium: domain.PaymentMediumBank, Bank: bank}, nil},
		{"bank without details", domain.PaymentRequest{Medium: domain.PaymentMediumBank}, domain.ErrBankDetailsRequired},
		{"bank with partial details", domain.PaymentRequest{Medium: domain.PaymentMediumBank,
			Bank: &domain.BankDetails{BankName: "Janata Bank"}}, domain.ErrBankDetailsRequired},
		{"bkash with trx id", domain.PaymentRequest{Medium: domain.PaymentMediumBkash, TrxID: "TRX1"}, nil},
		{"bkash without trx id", domain.PaymentRequest{Medium: domain.PaymentMediumBkash}, domain.ErrTrxIDRequired},
		{"nagad without trx id", domain.PaymentRequest{Medium: domain.PaymentMediumNagad}, domain.ErrTrxIDRequired},
		{"rocket without trx id", domain.PaymentRequest{Medium: domain.PaymentMediumRocket}, domain.ErrTrxIDRequired},
		{"unknown medium", domain.PaymentRequest{Medium: "paypal"}, domain.ErrUnknownMedium},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expError, test.req.ValidateRefs())
		})
	}
}

func TestItemValidationError(t *testing.T) {
	err := &domain.ItemValidationError{Failures: []domain.ItemFailure{
		{ProductID: 10, Reason: domain.ItemNotFound},
		{ProductID: 11, Reason: domain.ItemInsufficientStock, Available: 1, Requested: 3},
	}}

	assert.True(t, err.StockConflict())
	assert.Contains(t, err.Error(), "product 10: not_found")
	assert.Contains(t, err.Error(), "available 1, requested 3")

	noStock := &domain.ItemValidationError{Failures: []domain.ItemFailure{
		{ProductID: 10, Reason: domain.ItemInactive},
	}}
	assert.False(t, noStock.StockConflict())
}
