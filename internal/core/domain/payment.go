package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type PaymentMedium string

const (
	PaymentMediumCash   PaymentMedium = "cash"
	PaymentMediumCOD    PaymentMedium = "cod"
	PaymentMediumBank   PaymentMedium = "bank"
	PaymentMediumBkash  PaymentMedium = "bkash"
	PaymentMediumNagad  PaymentMedium = "nagad"
	PaymentMediumRocket PaymentMedium = "rocket"
)

func (m PaymentMedium) Valid() bool {
	switch m {
	case PaymentMediumCash, PaymentMediumCOD, PaymentMediumBank,
		PaymentMediumBkash, PaymentMediumNagad, PaymentMediumRocket:
		return true
	}
	return false
}

type BankDetails struct {
	BankName  string `json:"bank_name"`
	Branch    string `json:"branch"`
	RoutingNo string `json:"routing_no"`
}

// PaymentDetail is one installment in an order's ledger. The ledger is
// append-only: a historical row is never rewritten to correct a balance.
type PaymentDetail struct {
	ID            uint64
	OrderID       uint64
	UserID        uint64
	Medium        PaymentMedium
	AdvancePaid   decimal.Decimal
	PayableAmount decimal.Decimal
	AccNo         string
	TrxID         string
	Bank          *BankDetails
	DeliveredBy   uint64
	PaidAt        time.Time
}

// PaymentRequest is the input to recording a manual installment.
type PaymentRequest struct {
	OrderID uint64          `json:"order_id"`
	Medium  PaymentMedium   `json:"payment_medium"`
	Amount  decimal.Decimal `json:"advance_paid"`
	AccNo   string          `json:"acc_no,omitempty"`
	TrxID   string          `json:"trx_id,omitempty"`
	Bank    *BankDetails    `json:"bank_details,omitempty"`
}

// ValidateRefs checks the medium-specific reference fields: bank transfers
// need full bank details, mobile wallets need a transaction id, cash and
// cash-on-delivery need neither.
func (r PaymentRequest) ValidateRefs() error {
	switch r.Medium {
	case PaymentMediumCash, PaymentMediumCOD:
		return nil
	case PaymentMediumBank:
		if r.Bank == nil || r.Bank.BankName == "" || r.Bank.Branch == "" || r.Bank.RoutingNo == "" {
			return ErrBankDetailsRequired
		}
		return nil
	case PaymentMediumBkash, PaymentMediumNagad, PaymentMediumRocket:
		if r.TrxID == "" {
			return ErrTrxIDRequired
		}
		return nil
	default:
		return ErrUnknownMedium
	}
}
