package domain

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is referenced by orders, never owned by them. The catalog CRUD
// around it lives outside this core.
type Product struct {
	ID            uint64
	Name          string
	Price         decimal.Decimal
	StockQuantity uint32
	Status        ProductStatus
	MinStock      uint32
}

type ItemFailureReason string

const (
	ItemNotFound          ItemFailureReason = "not_found"
	ItemInactive          ItemFailureReason = "inactive"
	ItemInsufficientStock ItemFailureReason = "insufficient_stock"
	ItemBadQuantity       ItemFailureReason = "bad_quantity"
)

type ItemFailure struct {
	ProductID uint64            `json:"product_id"`
	Reason    ItemFailureReason `json:"reason"`
	Available uint32            `json:"available,omitempty"`
	Requested uint32            `json:"requested,omitempty"`
}

func (f ItemFailure) String() string {
	if f.Reason == ItemInsufficientStock {
		return fmt.Sprintf("product %d: %s (available %d, requested %d)",
			f.ProductID, f.Reason, f.Available, f.Requested)
	}
	return fmt.Sprintf("product %d: %s", f.ProductID, f.Reason)
}

// ItemValidationError aggregates every line-item violation found in a cart
// so the caller sees all of them at once.
type ItemValidationError struct {
	Failures []ItemFailure
}

func (e *ItemValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.String())
	}
	return "invalid line items: " + strings.Join(msgs, "; ")
}

// StockConflict reports whether any failure is a stock shortage, which
// callers treat as a conflict rather than a plain validation error.
func (e *ItemValidationError) StockConflict() bool {
	for _, f := range e.Failures {
		if f.Reason == ItemInsufficientStock {
			return true
		}
	}
	return false
}
