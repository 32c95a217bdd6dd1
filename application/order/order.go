package order

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	couponapp "github.com/onestopfashion897-star/onestopfashion-backend/application/coupon"
	"github.com/onestopfashion897-star/onestopfashion-backend/cmd/config"
	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
	"github.com/onestopfashion897-star/onestopfashion-backend/model"
	orderrepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/order"
	productrepo "github.com/onestopfashion897-star/onestopfashion-backend/repository/product"
	"github.com/onestopfashion897-star/onestopfashion-backend/thirdparty/rabbitmq"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/errors"
	"github.com/onestopfashion897-star/onestopfashion-backend/utils/logger"
	"github.com/shopspring/decimal"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, userID string, isAdmin bool, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, filter *model.OrderListFilter) (*model.OrderListResponse, error)
	ConfirmPayment(ctx context.Context, userID, orderID string) error
	UpdateStatus(ctx context.Context, orderID string, status constant.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status constant.PaymentStatus) error
	UpdateTracking(ctx context.Context, orderID, trackingNumber string) error
	UpdateNotes(ctx context.Context, orderID, notes string) error
	ReconcileStock(ctx context.Context, msg *rabbitmq.StockAdjustmentMessage) error
}

type orderAppImpl struct {
	config      *config.Config
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	couponApp   couponapp.CouponApp
	publisher   *rabbitmq.Publisher
}

func NewOrderApp(config *config.Config, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, couponApp couponapp.CouponApp, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		config:      config,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponApp:   couponApp,
		publisher:   publisher,
	}
}

// CreateOrder turns a cart into a persisted order, then reflects the
// purchase in inventory. The order insert is the durable step; inventory
// decrements are atomic per line but never roll back the order, failed or
// clamped lines go to the reconciliation queue instead.
func (s *orderAppImpl) CreateOrder(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrItemsRequired)
	}
	if req.ShippingAddress == nil {
		return nil, errors.SetCustomError(constant.ErrAddressRequired)
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = constant.PaymentMethodCOD
	}
	if !constant.IsValidPaymentMethod(paymentMethod) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	// Load every referenced product. Prices and display fields are
	// snapshotted from the store, not taken from the client.
	items := make([]model.OrderItem, 0, len(req.Items))
	products := make(map[string]*model.Product, len(req.Items))
	for _, line := range req.Items {
		pid, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}

		product, ok := products[line.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, pid)
			if err != nil {
				logger.Error("[CreateOrder] load product", zap.String("product_id", line.ProductID), zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
			if product == nil {
				return nil, errors.SetCustomError(constant.ErrNotFound)
			}
			products[line.ProductID] = product
		}

		item := model.OrderItem{
			ProductID:   pid,
			Name:        product.Name,
			Price:       product.Price,
			Quantity:    line.Quantity,
			Size:        line.Size,
			Image:       product.Image,
			VariantID:   line.VariantID,
			VariantName: line.VariantName,
			VariantType: line.VariantType,
		}
		if item.Image == "" {
			item.Image = line.Image
		}
		items = append(items, item)
	}

	// Server-side coupon validation. Validation never consumes usage.
	subtotal := computeSubtotal(items)
	discount := decimal.Zero
	freeShipping := false
	if req.CouponCode != "" {
		res, err := s.couponApp.Validate(ctx, &model.ValidateCouponRequest{
			Code:     req.CouponCode,
			Subtotal: subtotal.InexactFloat64(),
		})
		if err != nil {
			return nil, err
		}
		discount = decimal.NewFromFloat(res.Discount)
		freeShipping = res.FreeShipping
	}

	q := buildQuote(&s.config.Order, items, discount, freeShipping)

	tolerance := s.config.Order.TotalTolerance
	if !withinTolerance(req.Subtotal, q.Subtotal, tolerance) ||
		!withinTolerance(req.ShippingCost, q.Shipping, tolerance) ||
		!withinTolerance(req.Discount, q.Discount, tolerance) ||
		!withinTolerance(req.Total, q.Total, tolerance) {
		logger.Info("[CreateOrder] client totals rejected",
			zap.String("user_id", userID),
			zap.Float64("server_total", q.Total.InexactFloat64()))
		return nil, errors.SetCustomError(constant.ErrTotalMismatch)
	}

	// Consume coupon usage before the insert. The guarded increment is the
	// point where a concurrent redemption race is lost.
	if req.CouponCode != "" {
		if err := s.couponApp.Redeem(ctx, req.CouponCode); err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		OrderID:         generateOrderID(),
		UserID:          uid,
		Items:           items,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   constant.PaymentStatusPending,
		Status:          constant.OrderStatusPending,
		Subtotal:        q.Subtotal.InexactFloat64(),
		ShippingCost:    q.Shipping.InexactFloat64(),
		Discount:        q.Discount.InexactFloat64(),
		Total:           q.Total.InexactFloat64(),
		CouponCode:      req.CouponCode,
	}

	order, err = s.orderRepo.Insert(ctx, order)
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		// Give back the usage the redeem above consumed, no order exists to
		// justify it.
		if req.CouponCode != "" {
			if rerr := s.couponApp.Release(ctx, req.CouponCode); rerr != nil {
				logger.Error("[CreateOrder] release coupon usage",
					zap.String("coupon", req.CouponCode),
					zap.String("error", rerr.Error()))
			}
		}
		return nil, errors.SetCustomError(constant.ErrOrderCreateFailed)
	}

	s.decrementInventory(ctx, order, products)

	return order, nil
}

// decrementInventory runs the per-line stock decrements sequentially. Each
// decrement is a single atomic clamped update; a line that fails or that the
// pre-read suggests will clamp is published for reconciliation. The order is
// never rolled back here.
func (s *orderAppImpl) decrementInventory(ctx context.Context, order *model.Order, products map[string]*model.Product) {
	for _, item := range order.Items {
		product := products[item.ProductID.Hex()]

		var (
			matched bool
			err     error
			bucket  = item.Size != "" && product != nil && len(product.SizeStocks) > 0
		)
		if bucket {
			matched, err = s.productRepo.DecrementSizeStock(ctx, item.ProductID, item.Size, item.Quantity)
		} else {
			matched, err = s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
		}

		switch {
		case err != nil:
			logger.Error("[CreateOrder] stock decrement failed",
				zap.String("order_id", order.OrderID),
				zap.String("product_id", item.ProductID.Hex()),
				zap.String("error", err.Error()))
			s.publishAdjustment(order, item, item.Quantity, rabbitmq.ReasonDecrementFailed)
		case !matched:
			logger.Warn("[CreateOrder] stock bucket missing",
				zap.String("order_id", order.OrderID),
				zap.String("product_id", item.ProductID.Hex()),
				zap.String("size", item.Size))
			s.publishAdjustment(order, item, item.Quantity, rabbitmq.ReasonBucketMissing)
		default:
			// The decrement applied and clamped at zero. Only the shortfall
			// goes on the queue; the units the store had are already gone.
			if short := shortfall(product, item); short > 0 {
				logger.Warn("[CreateOrder] stock clamped at zero",
					zap.String("order_id", order.OrderID),
					zap.String("product_id", item.ProductID.Hex()),
					zap.String("size", item.Size),
					zap.Int("shortfall", short))
				s.publishAdjustment(order, item, short, rabbitmq.ReasonStockClamped)
			}
		}
	}
}

// shortfall reports how many ordered units the pre-read stock could not
// cover. The atomic update clamps at zero, so these units were sold without
// inventory backing them.
func shortfall(product *model.Product, item model.OrderItem) int {
	if product == nil {
		return 0
	}
	available := product.Stock
	if item.Size != "" && len(product.SizeStocks) > 0 {
		available = 0
		for _, b := range product.SizeStocks {
			if b.Size == item.Size {
				available = b.Stock
				break
			}
		}
	}
	if available >= item.Quantity {
		return 0
	}
	return item.Quantity - available
}

func (s *orderAppImpl) publishAdjustment(order *model.Order, item model.OrderItem, quantity int, reason string) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.StockAdjustmentMessage{
		OrderID:   order.OrderID,
		ProductID: item.ProductID.Hex(),
		Size:      item.Size,
		Quantity:  quantity,
		Reason:    reason,
		FailedAt:  time.Now(),
	}
	if err := s.publisher.PublishStockAdjustment(msg); err != nil {
		logger.Error("[CreateOrder] publish stock adjustment", zap.String("error", err.Error()))
	}
}

func (s *orderAppImpl) GetOrder(ctx context.Context, userID string, isAdmin bool, orderID string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	order, err := s.orderRepo.GetByID(ctx, oid)
	if err != nil {
		logger.Error("[GetOrder] err orderRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if !isAdmin && order.UserID.Hex() != userID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return order, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, filter *model.OrderListFilter) (*model.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != "" && !constant.IsValidOrderStatus(filter.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidStatus)
	}

	items, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListOrders] err orderRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.Limit,
	}, nil
}

// ConfirmPayment is the later step of an online checkout: it flips the
// payment status to paid and moves the order into processing.
func (s *orderAppImpl) ConfirmPayment(ctx context.Context, userID, orderID string) error {
	order, err := s.GetOrder(ctx, userID, false, orderID)
	if err != nil {
		return err
	}
	if order.PaymentStatus != constant.PaymentStatusPending {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	matched, err := s.orderRepo.MarkPaid(ctx, order.ID)
	if err != nil {
		logger.Error("[ConfirmPayment] mark paid", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !matched {
		// Lost to a concurrent confirmation, the pending guard in the update
		// filter rejected the flip.
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

func (s *orderAppImpl) UpdateStatus(ctx context.Context, orderID string, status constant.OrderStatus) error {
	if !constant.IsValidOrderStatus(status) {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}
	return s.update(ctx, orderID, "status", func(oid primitive.ObjectID) (bool, error) {
		return s.orderRepo.UpdateStatus(ctx, oid, status)
	})
}

func (s *orderAppImpl) UpdatePaymentStatus(ctx context.Context, orderID string, status constant.PaymentStatus) error {
	if !constant.IsValidPaymentStatus(status) {
		return errors.SetCustomError(constant.ErrInvalidStatus)
	}
	return s.update(ctx, orderID, "payment status", func(oid primitive.ObjectID) (bool, error) {
		return s.orderRepo.UpdatePaymentStatus(ctx, oid, status)
	})
}

func (s *orderAppImpl) UpdateTracking(ctx context.Context, orderID, trackingNumber string) error {
	return s.update(ctx, orderID, "tracking", func(oid primitive.ObjectID) (bool, error) {
		return s.orderRepo.UpdateTracking(ctx, oid, trackingNumber)
	})
}

func (s *orderAppImpl) UpdateNotes(ctx context.Context, orderID, notes string) error {
	return s.update(ctx, orderID, "notes", func(oid primitive.ObjectID) (bool, error) {
		return s.orderRepo.UpdateNotes(ctx, oid, notes)
	})
}

func (s *orderAppImpl) update(ctx context.Context, orderID, what string, fn func(primitive.ObjectID) (bool, error)) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	matched, err := fn(oid)
	if err != nil {
		logger.Error("[UpdateOrder] update "+what, zap.String("order_id", orderID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !matched {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

// ReconcileStock retries a decrement that failed at checkout time. Called by
// the internal endpoint the reconciler consumer posts to.
func (s *orderAppImpl) ReconcileStock(ctx context.Context, msg *rabbitmq.StockAdjustmentMessage) error {
	// A clamped line already consumed everything the store had; replaying the
	// decrement would charge restocked inventory a second time. Logged for
	// manual review instead.
	if msg.Reason == rabbitmq.ReasonStockClamped {
		logger.Warn("[ReconcileStock] oversold line flagged for review",
			zap.String("order_id", msg.OrderID),
			zap.String("product_id", msg.ProductID),
			zap.String("size", msg.Size),
			zap.Int("shortfall", msg.Quantity))
		return nil
	}

	pid, err := primitive.ObjectIDFromHex(msg.ProductID)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	var matched bool
	if msg.Size != "" {
		matched, err = s.productRepo.DecrementSizeStock(ctx, pid, msg.Size, msg.Quantity)
	} else {
		matched, err = s.productRepo.DecrementStock(ctx, pid, msg.Quantity)
	}
	if err != nil {
		logger.Error("[ReconcileStock] decrement", zap.String("order_id", msg.OrderID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !matched {
		logger.Warn("[ReconcileStock] no matching product or bucket",
			zap.String("order_id", msg.OrderID),
			zap.String("product_id", msg.ProductID),
			zap.String("size", msg.Size))
		return errors.SetCustomError(constant.ErrNotFound)
	}
	return nil
}

// generateOrderID builds the human-facing order reference: creation
// timestamp plus a random suffix. Unique by construction, not checked.
func generateOrderID() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
