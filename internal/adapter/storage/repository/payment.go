package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) insertPayment(ctx context.Context, tx pgx.Tx, payment *domain.PaymentDetail) error {
	var bank []byte
	if payment.Bank != nil {
		var err error
		if bank, err = json.Marshal(payment.Bank); err != nil {
			return err
		}
	}

	statement := r.db.QueryBuilder.
		Insert("payment_details").
		Columns("order_id", "user_id", "payment_medium", "advance_paid",
			"payable_amount", "acc_no", "trx_id", "bank_details",
			"delivered_by", "paid_at").
		Values(payment.OrderID, payment.UserID, payment.Medium, payment.AdvancePaid,
			payment.PayableAmount, payment.AccNo, payment.TrxID, bank,
			payment.DeliveredBy, payment.PaidAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	return tx.QueryRow(ctx, sql, args...).Scan(&payment.ID)
}

func (r *Repository) listPayments(ctx context.Context, orderID uint64) ([]domain.PaymentDetail, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "user_id", "payment_medium", "advance_paid",
			"payable_amount", "COALESCE(acc_no, '')", "COALESCE(trx_id, '')",
			"bank_details", "COALESCE(delivered_by, 0)", "paid_at").
		From("payment_details").
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

	payments := make([]domain.PaymentDetail, 0)
	for rows.Next() {
		p := domain.PaymentDetail{}
		var bank []byte
		err := rows.Scan(
			&p.ID,
			&p.OrderID,
			&p.UserID,
			&p.Medium,
			&p.AdvancePaid,
			&p.PayableAmount,
			&p.AccNo,
			&p.TrxID,
			&bank,
			&p.DeliveredBy,
			&p.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		if len(bank) > 0 {
			p.Bank = &domain.BankDetails{}
			if err := json.Unmarshal(bank, p.Bank); err != nil {
				return nil, fmt.Errorf("decoding bank details: %w", err)
			}
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// AppendPayment runs fn inside a transaction that holds a row lock on the
// order, so the balance fn computes from cannot move underneath it. The
// already-paid total is recomputed from the ledger at the moment of
// insertion, never trusted from the caller.
func (r *Repository) AppendPayment(ctx context.Context, orderID uint64, fn port.AppendPaymentFn) (*domain.PaymentDetail, error) {
	var detail *domain.PaymentDetail

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		lockSt := r.db.QueryBuilder.
			Select("id", "user_id", "status", "payment_status", "total").
			From("orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE")

		sql, args, err := lockSt.ToSql()
		if err != nil {
			return err
		}

		order := domain.Order{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.PaymentStatus,
			&order.Total,
		)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrDataNotFound
			}
			return err
		}

		sumSt := r.db.QueryBuilder.
			Select("COALESCE(SUM(advance_paid), 0)").
			From("payment_details").
			Where(sq.Eq{"order_id": orderID})

		sql, args, err = sumSt.ToSql()
		if err != nil {
			return err
		}

		var alreadyPaid decimal.Decimal
		if err := tx.QueryRow(ctx, sql, args...).Scan(&alreadyPaid); err != nil {
			return err
		}

		d, err := fn(&order, alreadyPaid)
		if err != nil {
			return err
		}

		if err := r.insertPayment(ctx, tx, d); err != nil {
			return err
		}

		updateSt := r.db.QueryBuilder.
			Update("orders").
			Set("status", order.Status).
			Set("payment_status", order.PaymentStatus).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": orderID})

		sql, args, err = updateSt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}
