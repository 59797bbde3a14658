package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/broker"
	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order submission and admin order management.
// Privileged methods take an auth.Session, obtainable only through the
// session gate.
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(st *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          st,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateStoreOrder serializes the cart into a normal_order and persists
// it together with the per-line stock decrements in one transaction.
// The caller is responsible for clearing the cart afterwards.
func (s *OrderService) CreateStoreOrder(ctx context.Context, customerName, phone, address string, c *cart.Cart) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateStoreOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	customerName = strings.TrimSpace(customerName)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)

	if customerName == "" || phone == "" {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}
	if address == "" {
		// address is mandatory for store orders, unlike custom requests
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if c == nil || len(c.Lines) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		CustomerName: customerName,
		Phone:        phone,
		Address:      &address,
		Items:        models.NewStoreItems(c.Snapshot()),
		Status:       models.OrderStatusPendingApproval,
		Type:         models.OrderTypeNormal,
	}

	if err := s.store.CreateStoreOrderTx(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.WithLabelValues(models.OrderTypeNormal).Inc()
	util.StockDecrementsTotal.Add(float64(len(order.Items.Store.Products)))
	s.logger.Info("Store order created",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items.Store.Products)),
		zap.Float64("total_price", order.Items.Store.TotalPrice))

	s.publishOrderCreated(ctx, order)
	s.publishStockLevels(ctx, order.Items.Store.Products)

	return order, nil
}

// CreateCustomRequest persists an out-of-catalog supply request. No
// stock is touched and the address is always NULL.
func (s *OrderService) CreateCustomRequest(ctx context.Context, customerName, phone, category, productDetail, budgetRange string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateCustomRequest")
	defer span.End()

	customerName = strings.TrimSpace(customerName)
	phone = strings.TrimSpace(phone)
	category = strings.TrimSpace(category)
	productDetail = strings.TrimSpace(productDetail)

	if customerName == "" || phone == "" {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}
	if category == "" || productDetail == "" {
		util.OrdersFailedTotal.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("%w: category and product detail are required", ErrValidation)
	}

	order := &models.Order{
		CustomerName: customerName,
		Phone:        phone,
		Address:      nil,
		Items: models.NewCustomItems(models.CustomRequestItems{
			Category:      category,
			ProductDetail: productDetail,
			BudgetRange:   strings.TrimSpace(budgetRange),
		}),
		Status: models.OrderStatusPendingApproval,
		Type:   models.OrderTypeCustomRequest,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create custom request: %w", err)
	}

	util.OrdersCreatedTotal.WithLabelValues(models.OrderTypeCustomRequest).Inc()
	s.logger.Info("Custom request created", zap.String("order_id", order.ID))

	s.publishOrderCreated(ctx, order)

	return order, nil
}

// GetOrders lists all orders for the admin console, newest first
func (s *OrderService) GetOrders(ctx context.Context, _ auth.Session) ([]models.Order, error) {
	return s.store.GetOrders(ctx)
}

// GetOrder retrieves one order for the admin console
func (s *OrderService) GetOrder(ctx context.Context, _ auth.Session, id string) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

// UpdateOrderStatus moves an order to a new status, enforcing the
// transition table: pending_approval may go to approved_waiting or
// rejected, approved_waiting to delivered; delivered and rejected are
// terminal.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, _ auth.Session, id, newStatus string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if !models.ValidOrderStatus(newStatus) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	current, err := s.store.GetOrderStatus(ctx, id)
	if err != nil {
		return err
	}

	if !models.CanTransition(current, newStatus) {
		util.IllegalTransitionsTotal.Inc()
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, newStatus)
	}

	if err := s.store.UpdateOrderStatus(ctx, id, newStatus); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	util.OrderStatusChangesTotal.WithLabelValues(newStatus).Inc()
	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("from", current),
		zap.String("to", newStatus))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:   id,
		OldStatus: current,
		NewStatus: newStatus,
	}
	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	return nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:   order.ID,
		OrderType: order.Type,
	}
	if order.Items.Store != nil {
		event.TotalPrice = order.Items.Store.TotalPrice
		event.Lines = order.Items.Store.Products
	}

	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}

// publishStockLevels re-reads the decremented products and announces
// their new stock counts. Best effort; the cache worker recovers on the
// next event.
func (s *OrderService) publishStockLevels(ctx context.Context, lines []models.OrderLine) {
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to read stock after checkout", zap.Error(err))
		return
	}

	for _, p := range products {
		event := &models.StockChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeStockChanged,
				Timestamp: time.Now(),
			},
			ProductID: p.ID,
			Stock:     p.Stock,
		}
		if err := s.eventPublisher.PublishStockChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish StockChanged event",
				zap.String("product_id", p.ID),
				zap.Error(err))
		}
	}
}
