package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// transitions lists the fulfillment moves allowed from each status.
// cancelled and refunded are reachable from every non-terminal status.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether a fulfillment action may move an order
// from s to target. payment_status is not governed here, the payment
// ledger owns that axis.
func CanTransition(s, target OrderStatus) error {
	if !s.Valid() || !target.Valid() {
		return ErrUnknownStatus
	}
	if s.Terminal() {
		return ErrOrderTerminal
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return nil
		}
	}
	return ErrInvalidTransition
}

// Address is the structured shipping/billing address stored on the order.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Order is the aggregate root: header plus items plus the payment ledger.
// Items and the ledger are owned by the order; products are referenced only.
type Order struct {
	ID              uint64
	Number          string
	UserID          uint64
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	Currency        string
	PaymentMethod   string
	TransactionID   string
	ShippingAddress Address
	BillingAddress  Address
	Notes           string
	TrackingNumber  string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items    []OrderItem
	Payments []PaymentDetail
	User     *User
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ProductID uint64
	Quantity  uint32
	UnitPrice decimal.Decimal
}

// LineTotal is unit_price * quantity, exact (unit prices are already
// rounded to the currency's smallest unit).
func (i OrderItem) LineTotal() (decimal.Decimal, error) {
	qty, err := decimal.New(int64(i.Quantity), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return i.UnitPrice.Mul(qty)
}

// Totals is the output of the pricing calculator.
// Invariant: Total == (Subtotal - Discount) + Tax + ShippingCost,
// every component non-negative.
type Totals struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// ItemRequest is one cart line as submitted by the caller.
type ItemRequest struct {
	ProductID uint64 `json:"product_id"`
	Quantity  uint32 `json:"quantity"`
}

// OrderRequest is the input to checkout and point-of-sale order creation.
type OrderRequest struct {
	Items           []ItemRequest   `json:"items"`
	Discount        decimal.Decimal `json:"discount"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
}

// OrderFilter narrows admin order listings. Zero fields mean "any".
type OrderFilter struct {
	Status *OrderStatus
	From   *time.Time
	To     *time.Time
}
