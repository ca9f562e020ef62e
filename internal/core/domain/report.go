package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Overview is the all-time rollup shown on the admin dashboard.
type Overview struct {
	TotalOrders     int64           `json:"total_orders"`
	PaidOrders      int64           `json:"paid_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	TotalUnits      int64           `json:"total_units"`
	Buyers          int64           `json:"buyers"`
	TotalSales      decimal.Decimal `json:"total_sales"`
}

type MediumTotal struct {
	Medium   PaymentMedium   `json:"payment_medium"`
	Payments int64           `json:"payments"`
	Amount   decimal.Decimal `json:"amount"`
}

// SalesReport is a read-only aggregate over a date range. Rendering it as
// JSON or a spreadsheet is a presentation concern outside the core.
type SalesReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Orders        int64                 `json:"orders"`
	PaidOrders    int64                 `json:"paid_orders"`
	StatusCounts  map[OrderStatus]int64 `json:"status_counts"`
	GrossSales    decimal.Decimal       `json:"gross_sales"`
	NetSales      decimal.Decimal       `json:"net_sales"`
	TotalDiscount decimal.Decimal       `json:"total_discount"`
	AverageOrder  decimal.Decimal       `json:"average_order"`
	UnitsSold     int64                 `json:"units_sold"`
	ProductsSold  int64                 `json:"products_sold"`
	Buyers        int64                 `json:"buyers"`
	Mediums       []MediumTotal         `json:"mediums"`
}
