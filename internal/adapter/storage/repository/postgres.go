package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/bazarhat/shopcore/internal/adapter/storage"
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Insert("users").
		Columns("name", "email", "password", "role").
		Values(user.Name, user.Email, user.Password, user.Role).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "email", "password", "role").
		From("users").
		Where(sq.Eq{"email": email})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) GetProducts(ctx context.Context, ids []uint64) (map[uint64]*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "price", "stock_quantity", "status", "min_stock").
		From("products").
		Where(sq.Eq{"id": ids})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[uint64]*domain.Product, len(ids))
	for rows.Next() {
		p := domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.StockQuantity,
			&p.Status,
			&p.MinStock,
		)
		if err != nil {
			return nil, err
		}
		products[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
