package service

import (
	"fmt"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
)

// moneyScale is the number of digits after the decimal point in the
// currency's smallest unit (poisha for BDT).
const moneyScale = 2

// PricingConfig is the named set of pricing tunables. It is built once at
// startup, never recomputed per call.
type PricingConfig struct {
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	MinAdvance            decimal.Decimal
	Currency              string
}

// ParsePricing builds a PricingConfig from decimal strings, typically read
// from the environment.
func ParsePricing(taxRate, shippingFee, freeShippingThreshold, minAdvance, currency string) (PricingConfig, error) {
	var cfg PricingConfig
	var err error
	if cfg.TaxRate, err = decimal.Parse(taxRate); err != nil {
		return cfg, fmt.Errorf("parsing tax rate: %w", err)
	}
	if cfg.ShippingFee, err = decimal.Parse(shippingFee); err != nil {
		return cfg, fmt.Errorf("parsing shipping fee: %w", err)
	}
	if cfg.FreeShippingThreshold, err = decimal.Parse(freeShippingThreshold); err != nil {
		return cfg, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	if cfg.MinAdvance, err = decimal.Parse(minAdvance); err != nil {
		return cfg, fmt.Errorf("parsing minimum advance: %w", err)
	}
	cfg.Currency = currency
	return cfg, nil
}

// POS derives the point-of-sale variant: no tax, no shipping, no minimum
// advance (a POS sale is paid in full at the counter).
func (c PricingConfig) POS() PricingConfig {
	return PricingConfig{Currency: c.Currency}
}

// Quote computes subtotal, tax, shipping and total for a priced line-item
// list. Pure: no side effects, no persistence.
//
// subtotal is an exact sum of line totals. tax is the only rounded figure,
// round-half-up to the currency's smallest unit, applied exactly once.
// Shipping is waived when the taxable amount meets the free threshold.
func (c PricingConfig) Quote(items []domain.OrderItem, discount decimal.Decimal) (domain.Totals, error) {
	var t domain.Totals
	if len(items) == 0 {
		return t, domain.ErrEmptyOrder
	}
	if discount.IsNeg() {
		return t, domain.ErrNegativeDiscount
	}

	subtotal := decimal.Zero
	for _, item := range items {
		line, err := item.LineTotal()
		if err != nil {
			return t, fmt.Errorf("math error: %w", err)
		}
		if subtotal, err = subtotal.Add(line); err != nil {
			return t, fmt.Errorf("math error: %w", err)
		}
	}

	taxable, err := subtotal.Sub(discount)
	if err != nil {
		return t, fmt.Errorf("math error: %w", err)
	}
	if taxable.IsNeg() {
		return t, domain.ErrDiscountTooLarge
	}

	rawTax, err := taxable.Mul(c.TaxRate)
	if err != nil {
		return t, fmt.Errorf("math error: %w", err)
	}
	tax, err := roundHalfUp(rawTax, moneyScale)
	if err != nil {
		return t, fmt.Errorf("math error: %w", err)
	}

	shipping := c.ShippingFee
	if taxable.Cmp(c.FreeShippingThreshold) >= 0 {
		shipping = decimal.Zero
	}

	total, err := taxable.Add(tax)
	if err != nil {
		return t, fmt.Errorf("math error: %w", err)
	}
	if total, err = total.Add(shipping); err != nil {
		return t, fmt.Errorf("math error: %w", err)
	}

	return domain.Totals{
		Subtotal:     subtotal,
		Discount:     discount,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        total,
	}, nil
}

// roundHalfUp rounds a non-negative decimal half away from zero at the given
// scale. decimal.Round is half-to-even, which is the wrong tie-break for tax.
func roundHalfUp(d decimal.Decimal, scale int) (decimal.Decimal, error) {
	half, err := decimal.New(5, scale+1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	shifted, err := d.Add(half)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return shifted.Trunc(scale), nil
}
