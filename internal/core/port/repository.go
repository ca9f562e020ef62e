package port

import (
	"context"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/govalues/decimal"
)

// AppendPaymentFn runs inside the ledger-append transaction while the order
// row is locked. It receives the order and the sum of all prior installments,
// and returns the row to append. It may advance the order's payment_status
// and status; the repository persists both in the same transaction.
type AppendPaymentFn func(order *domain.Order, alreadyPaid decimal.Decimal) (*domain.PaymentDetail, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Inventory lookup
	GetProducts(ctx context.Context, ids []uint64) (map[uint64]*domain.Product, error)

	// Order aggregate. CreateOrder persists the header, every item and,
	// when firstPayment is non-nil, the opening ledger row in one
	// transaction. reserveStock additionally runs a conditional stock
	// decrement per item inside the same transaction; a failed decrement
	// aborts everything with ErrInsufficientStock.
	CreateOrder(ctx context.Context, order *domain.Order,
		firstPayment *domain.PaymentDetail, reserveStock bool) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter, page int) ([]*domain.Order, int64, error)

	// UpdateOrderStatus applies a transition conditionally on the status
	// the caller read, so concurrent transitions cannot stack.
	UpdateOrderStatus(ctx context.Context, orderID uint64,
		from, to domain.OrderStatus, paymentStatus *domain.PaymentStatus) error

	// Payment ledger
	AppendPayment(ctx context.Context, orderID uint64, fn AppendPaymentFn) (*domain.PaymentDetail, error)

	// Reporting
	OrdersOverview(ctx context.Context) (*domain.Overview, error)
	SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
}
