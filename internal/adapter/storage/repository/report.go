package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
)

// OrdersOverview is the all-time dashboard rollup.
func (r *Repository) OrdersOverview(ctx context.Context) (*domain.Overview, error) {
	statement := r.db.QueryBuilder.
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE payment_status = 'paid')",
			"COUNT(*) FILTER (WHERE status = 'delivered')",
			"COUNT(DISTINCT user_id)",
			"COALESCE(SUM(total), 0)",
		).
		From("orders")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	overview := domain.Overview{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&overview.TotalOrders,
		&overview.PaidOrders,
		&overview.DeliveredOrders,
		&overview.Buyers,
		&overview.TotalSales,
	)
	if err != nil {
		return nil, err
	}

	unitsSt := r.db.QueryBuilder.
		Select("COALESCE(SUM(order_quantity), 0)").
		From("order_items")

	sql, args, err = unitsSt.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&overview.TotalUnits); err != nil {
		return nil, err
	}

	return &overview, nil
}

// SalesReport aggregates the range [from, to). Plain read-committed reads,
// no transaction: the report tolerates a slightly stale snapshot.
func (r *Repository) SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error) {
	report := domain.SalesReport{
		From:         from,
		To:           to,
		StatusCounts: make(map[domain.OrderStatus]int64),
		Mediums:      make([]domain.MediumTotal, 0),
	}
	rangeCond := sq.And{sq.GtOrEq{"created_at": from}, sq.Lt{"created_at": to}}

	baseSt := r.db.QueryBuilder.
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE payment_status = 'paid')",
			"COALESCE(SUM(total), 0)",
			"COALESCE(SUM(subtotal - discount), 0)",
			"COALESCE(SUM(discount), 0)",
			"COUNT(DISTINCT user_id)",
		).
		From("orders").
		Where(rangeCond)

	sql, args, err := baseSt.ToSql()
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&report.Orders,
		&report.PaidOrders,
		&report.GrossSales,
		&report.NetSales,
		&report.TotalDiscount,
		&report.Buyers,
	)
	if err != nil {
		return nil, err
	}

	if report.Orders > 0 {
		n, err := decimal.New(report.Orders, 0)
		if err != nil {
			return nil, err
		}
		avg, err := report.GrossSales.Quo(n)
		if err != nil {
			return nil, err
		}
		report.AverageOrder = avg.Round(2)
	}

	statusSt := r.db.QueryBuilder.
		Select("status", "COUNT(*)").
		From("orders").
		Where(rangeCond).
		GroupBy("status")

	sql, args, err = statusSt.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		report.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsSt := r.db.QueryBuilder.
		Select("COALESCE(SUM(oi.order_quantity), 0)", "COUNT(DISTINCT oi.product_id)").
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Where(sq.And{sq.GtOrEq{"o.created_at": from}, sq.Lt{"o.created_at": to}})

	sql, args, err = itemsSt.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&report.UnitsSold, &report.ProductsSold); err != nil {
		return nil, err
	}

	mediumSt := r.db.QueryBuilder.
		Select("payment_medium", "COUNT(*)", "COALESCE(SUM(advance_paid), 0)").
		From("payment_details").
		Where(sq.And{sq.GtOrEq{"paid_at": from}, sq.Lt{"paid_at": to}}).
		GroupBy("payment_medium").
		OrderBy("payment_medium")

	sql, args, err = mediumSt.ToSql()
	if err != nil {
		return nil, err
	}
	mrows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()
	for mrows.Next() {
		mt := domain.MediumTotal{}
		if err := mrows.Scan(&mt.Medium, &mt.Payments, &mt.Amount); err != nil {
			return nil, err
		}
		report.Mediums = append(report.Mediums, mt)
	}
	if err := mrows.Err(); err != nil {
		return nil, err
	}

	return &report, nil
}
