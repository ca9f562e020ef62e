package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

const ordersPerPage = 10

var orderColumns = []string{
	"o.id", "o.order_number", "o.user_id", "o.status", "o.payment_status",
	"o.subtotal", "o.discount", "o.tax", "o.shipping_cost", "o.total",
	"o.currency", "COALESCE(o.payment_method, '')", "COALESCE(o.transaction_id, '')",
	"o.shipping_address", "o.billing_address",
	"COALESCE(o.notes, '')", "COALESCE(o.tracking_number, '')",
	"o.created_at", "o.updated_at",
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	var ship, bill []byte
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.UserID,
		&order.Status,
		&order.PaymentStatus,
		&order.Subtotal,
		&order.Discount,
		&order.Tax,
		&order.ShippingCost,
		&order.Total,
		&order.Currency,
		&order.PaymentMethod,
		&order.TransactionID,
		&ship,
		&bill,
		&order.Notes,
		&order.TrackingNumber,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if len(ship) > 0 {
		if err := json.Unmarshal(ship, &order.ShippingAddress); err != nil {
			return fmt.Errorf("decoding shipping address: %w", err)
		}
	}
	if len(bill) > 0 {
		if err := json.Unmarshal(bill, &order.BillingAddress); err != nil {
			return fmt.Errorf("decoding billing address: %w", err)
		}
	}
	return nil
}

// CreateOrder commits the whole aggregate in one transaction: optional
// conditional stock decrements, the header, every item and the optional
// opening ledger row. Any failure rolls everything back, a partially
// created order is never visible.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order,
	firstPayment *domain.PaymentDetail, reserveStock bool) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if reserveStock {
			for _, item := range order.Items {
				if err := r.decrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		ship, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return err
		}
		bill, err := json.Marshal(order.BillingAddress)
		if err != nil {
			return err
		}

		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns("order_number", "user_id", "status", "payment_status",
				"subtotal", "discount", "tax", "shipping_cost", "total",
				"currency", "payment_method", "transaction_id",
				"shipping_address", "billing_address", "notes", "tracking_number",
				"created_at", "updated_at").
			Values(order.Number, order.UserID, order.Status, order.PaymentStatus,
				order.Subtotal, order.Discount, order.Tax, order.ShippingCost, order.Total,
				order.Currency, order.PaymentMethod, order.TransactionID,
				ship, bill, order.Notes, order.TrackingNumber,
				order.CreatedAt, order.UpdatedAt).
			Suffix("RETURNING id")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&order.ID); err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			itemSt := r.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "product_id", "order_quantity", "unit_price").
				Values(item.OrderID, item.ProductID, item.Quantity, item.UnitPrice).
				Suffix("RETURNING id")

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}
			if err := tx.QueryRow(ctx, sql, args...).Scan(&item.ID); err != nil {
				return err
			}
		}

		if firstPayment != nil {
			firstPayment.OrderID = order.ID
			if err := r.insertPayment(ctx, tx, firstPayment); err != nil {
				return err
			}
			order.Payments = []domain.PaymentDetail{*firstPayment}
		}

		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

// decrementStock is the conditional update that keeps stock non-negative
// under concurrency: subtract only while enough remains, otherwise zero
// rows match and the whole transaction aborts.
func (r *Repository) decrementStock(ctx context.Context, tx pgx.Tx, productID uint64, qty uint32) error {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", qty)).
		Where(sq.Eq{"id": productID}).
		Where(sq.Expr("stock_quantity >= ?", qty))

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ReadOrder loads the aggregate: header, buyer, items and ledger.
func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	columns := append(append([]string{}, orderColumns...), "u.name", "u.email")
	statement := r.db.QueryBuilder.
		Select(columns...).
		From("orders o").
		Join("users u ON u.id = o.user_id").
		Where(sq.Eq{"o.id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}
	user := domain.User{}
	var ship, bill []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.Number,
		&order.UserID,
		&order.Status,
		&order.PaymentStatus,
		&order.Subtotal,
		&order.Discount,
		&order.Tax,
		&order.ShippingCost,
		&order.Total,
		&order.Currency,
		&order.PaymentMethod,
		&order.TransactionID,
		&ship,
		&bill,
		&order.Notes,
		&order.TrackingNumber,
		&order.CreatedAt,
		&order.UpdatedAt,
		&user.Name,
		&user.Email,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	if len(ship) > 0 {
		if err := json.Unmarshal(ship, &order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decoding shipping address: %w", err)
		}
	}
	if len(bill) > 0 {
		if err := json.Unmarshal(bill, &order.BillingAddress); err != nil {
			return nil, fmt.Errorf("decoding billing address: %w", err)
		}
	}
	user.ID = order.UserID
	order.User = &user

	if order.Items, err = r.listItems(ctx, orderID); err != nil {
		return nil, err
	}
	if order.Payments, err = r.listPayments(ctx, orderID); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *Repository) listItems(ctx context.Context, orderID uint64) ([]domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "product_id", "order_quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders o").
		Where(sq.Eq{"o.user_id": userID}).
		OrderBy("o.created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		list = append(list, &order)
	}
	return list, rows.Err()
}

// ListOrders pages through orders matching the filter and returns the total
// count for the same filter.
func (r *Repository) ListOrders(ctx context.Context, filter domain.OrderFilter, page int) ([]*domain.Order, int64, error) {
	conds := sq.And{}
	if filter.Status != nil {
		conds = append(conds, sq.Eq{"o.status": *filter.Status})
	}
	if filter.From != nil {
		conds = append(conds, sq.GtOrEq{"o.created_at": *filter.From})
	}
	if filter.To != nil {
		conds = append(conds, sq.Lt{"o.created_at": *filter.To})
	}

	countSt := r.db.QueryBuilder.Select("COUNT(*)").From("orders o")
	listSt := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders o").
		OrderBy("o.created_at DESC").
		Limit(uint64(ordersPerPage)).
		Offset(uint64(ordersPerPage * (page - 1)))
	if len(conds) > 0 {
		countSt = countSt.Where(conds)
		listSt = listSt.Where(conds)
	}

	sql, args, err := countSt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sql, args, err = listSt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		if err := scanOrder(rows, &order); err != nil {
			return nil, 0, err
		}
		list = append(list, &order)
	}
	return list, count, rows.Err()
}

// UpdateOrderStatus applies a transition keyed on the status the caller
// read: a concurrent transition makes the condition miss and the update
// reports a conflict instead of silently stacking.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID uint64,
	from, to domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID}).
		Where(sq.Eq{"status": from})
	if paymentStatus != nil {
		statement = statement.Set("payment_status", *paymentStatus)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflictingData
	}
	return nil
}
