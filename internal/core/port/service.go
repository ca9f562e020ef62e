package port

import (
	"context"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, email string, password string) (string, error)

	// Checkout prices and persists an order in pending/unpaid.
	// CreatePOSOrder prices, reserves stock, records the full payment and
	// persists the order as delivered/paid, all in one transaction.
	Checkout(ctx context.Context, actor domain.Actor, req *domain.OrderRequest) (*domain.Order, error)
	CreatePOSOrder(ctx context.Context, actor domain.Actor, req *domain.OrderRequest) (*domain.Order, error)

	GetOrder(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error)
	ListMyOrders(ctx context.Context, actor domain.Actor) ([]*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter, page int) ([]*domain.Order, int64, error)

	RecordPayment(ctx context.Context, actor domain.Actor, req *domain.PaymentRequest) (*domain.PaymentDetail, error)

	ChangeOrderStatus(ctx context.Context, orderID uint64, target domain.OrderStatus) (*domain.Order, error)

	OrdersOverview(ctx context.Context) (*domain.Overview, error)
	SalesReport(ctx context.Context, from, to time.Time) (*domain.SalesReport, error)
}
