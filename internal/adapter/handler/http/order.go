package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
	invoice port.InvoiceRenderer
}

func NewOrderHandler(service port.Service, invoice port.InvoiceRenderer, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
		invoice: invoice,
	}, nil
}

type itemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  uint32 `json:"quantity" binding:"required"`
}

type orderRequest struct {
	Items           []itemRequest  `json:"items" binding:"required"`
	Discount        float64        `json:"discount"`
	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`
	PaymentMethod   string         `json:"payment_method"`
	Notes           string         `json:"notes"`
}

func (r orderRequest) toDomain() (*domain.OrderRequest, error) {
	discount, err := decimal.NewFromFloat64(r.Discount)
	if err != nil {
		return nil, err
	}
	items := make([]domain.ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &domain.OrderRequest{
		Items:           items,
		Discount:        discount,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
	}, nil
}

type orderItemResp struct {
	ProductID uint64          `json:"product_id"`
	Quantity  uint32          `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type paymentResp struct {
	ID            uint64          `json:"id"`
	Medium        string          `json:"payment_medium"`
	AdvancePaid   decimal.Decimal `json:"advance_paid"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
	AccNo         string          `json:"acc_no,omitempty"`
	TrxID         string          `json:"trx_id,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

type orderResp struct {
	ID              uint64          `json:"id"`
	Number          string          `json:"order_number"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	ShippingAddress domain.Address  `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []orderItemResp `json:"items,omitempty"`
	Payments        []paymentResp   `json:"payments,omitempty"`
}

func toOrderResp(o *domain.Order) orderResp {
	resp := orderResp{
		ID:              o.ID,
		Number:          o.Number,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		Tax:             o.Tax,
		ShippingCost:    o.ShippingCost,
		Total:           o.Total,
		Currency:        o.Currency,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResp{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, paymentResp{
			ID:            p.ID,
			Medium:        string(p.Medium),
			AdvancePaid:   p.AdvancePaid,
			PayableAmount: p.PayableAmount,
			AccNo:         p.AccNo,
			TrxID:         p.TrxID,
			PaidAt:        p.PaidAt,
		})
	}
	return resp
}

// CreateOrder is the cart checkout.
func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	req := orderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	domReq, err := req.toDomain()
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.Checkout(ctx, actor, domReq)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, toOrderResp(order), "Order Creation Successful!", http.StatusCreated)
}

// CreatePOSOrder is the counter sale, admin only.
func (oh *OrderHandler) CreatePOSOrder(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	req := orderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	domReq, err := req.toDomain()
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.CreatePOSOrder(ctx, actor, domReq)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, toOrderResp(order), "Order Creation Successful!", http.StatusCreated)
}

func (oh *OrderHandler) ListMyOrders(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	list, err := oh.service.ListMyOrders(ctx, actor)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResp, 0, len(list))
	for _, o := range list {
		result = append(result, toOrderResp(o))
	}
	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.GetOrder(ctx, actor, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, toOrderResp(order))
}

type orderListResp struct {
	Orders []orderResp `json:"orders"`
	Count  int64       `json:"count"`
	Page   int         `json:"page"`
	Pages  int64       `json:"pages"`
}

const listPerPage = 10

// ListOrders is the admin listing with status/date filters, page-based
// pagination and a total count matching the same filter.
func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	filter := domain.OrderFilter{}
	if status := ctx.Query("status"); status != "" {
		s := domain.OrderStatus(status)
		if !s.Valid() {
			oh.handleError(ctx, domain.ErrUnknownStatus)
			return
		}
		filter.Status = &s
	}
	if from, ok := parseDateQuery(ctx, "from"); ok {
		filter.From = &from
	}
	if to, ok := parseDateQuery(ctx, "to"); ok {
		filter.To = &to
	}

	list, count, err := oh.service.ListOrders(ctx, filter, page)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := orderListResp{
		Orders: make([]orderResp, 0, len(list)),
		Count:  count,
		Page:   page,
		Pages:  (count + listPerPage - 1) / listPerPage,
	}
	for _, o := range list {
		result.Orders = append(result.Orders, toOrderResp(o))
	}
	oh.handleSuccess(ctx, result)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus applies a fulfillment transition (ship, deliver, cancel,
// refund) through the order state machine.
func (oh *OrderHandler) ChangeStatus(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := statusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.ChangeOrderStatus(ctx, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccessWithStatus(ctx, toOrderResp(order), "Order Updated Successfully!", http.StatusOK)
}

// GenerateInvoice streams the order as a PDF, owner or admin only.
func (oh *OrderHandler) GenerateInvoice(ctx *gin.Context) {
	actor := getAuthPayload(ctx).Actor()

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.GetOrder(ctx, actor, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	doc, err := oh.invoice.RenderInvoice(order)
	if err != nil {
		oh.logger.Error("render invoice", zap.Error(err))
		oh.handleError(ctx, domain.ErrInternal)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=invoice_"+order.Number+".pdf")
	ctx.Data(http.StatusOK, "application/pdf", doc)
}

func parseDateQuery(ctx *gin.Context, key string) (time.Time, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
