package service

import (
	"context"
	"fmt"
	"time"

	"order-manager/internal/features/orders/domain"
	"order-manager/internal/features/orders/ports"
	"order-manager/internal/features/orders/pricing"

	"go.uber.org/zap"
)

// OrderService creates orders and drives their status lifecycle.
// It does not enforce transition legality: any status may follow any other.
type OrderService struct {
	repo     ports.OrderRepository
	stock    ports.StockChecker
	notifier ports.Notifier
	loyalty  ports.LoyaltyProgram
	pricing  pricing.Pipeline
	log      *zap.Logger
	now      func() time.Time
}

// Option customizes an OrderService.
type Option func(*OrderService)

// WithPipeline replaces the standard pricing pipeline.
func WithPipeline(p pricing.Pipeline) Option {
	return func(s *OrderService) { s.pricing = p }
}

// WithClock replaces time.Now, used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *OrderService) { s.log = l }
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	repo ports.OrderRepository,
	stock ports.StockChecker,
	notifier ports.Notifier,
	loyalty ports.LoyaltyProgram,
	opts ...Option,
) *OrderService {
	s := &OrderService{
		repo:     repo,
		stock:    stock,
		notifier: notifier,
		loyalty:  loyalty,
		pricing:  pricing.NewPipeline(),
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder prices and persists a new PENDING order and returns its durable id.
// Nothing is persisted when stock is insufficient.
func (s *OrderService) CreateOrder(ctx context.Context, customer domain.Customer, items []domain.OrderItem, isSpecial bool) (int64, error) {
	ok, err := s.stock.IsStockSufficient(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("service: failed to check stock: %w", err)
	}
	if !ok {
		return 0, domain.ErrInsufficientStock
	}

	total := s.pricing.Total(customer, items, isSpecial)
	order := domain.NewOrder(customer, items, total, isSpecial, s.now())

	id, err := s.repo.Add(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("service: failed to save order: %w", err)
	}
	order.ID = id

	s.log.Info("Order created",
		zap.Int64("order_id", id),
		zap.String("customer", customer.Name),
		zap.String("total", total.String()),
		zap.Bool("special", isSpecial),
	)

	s.notifier.Send(ctx, order, domain.StatusPending)

	return id, nil
}

// UpdateOrderStatus persists the new status and fires its side effects:
// a notification always, loyalty points on DELIVERED.
// An unknown id is logged and reported as domain.ErrOrderNotFound without side effects.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to load order %d: %w", id, err)
	}
	if order == nil {
		s.log.Warn("Order not found", zap.Int64("order_id", id))
		return domain.ErrOrderNotFound
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("service: failed to update order %d: %w", id, err)
	}

	s.log.Info("Order status updated",
		zap.Int64("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
	)

	s.notifier.Send(ctx, order, status)

	if status == domain.StatusDelivered {
		s.loyalty.RegisterPoints(ctx, order)
	}

	return nil
}

// GetOrder returns the stored order or domain.ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load order %d: %w", id, err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns every order, or only those of customerName when it is not empty.
func (s *OrderService) ListOrders(ctx context.Context, customerName string) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if customerName == "" {
		orders, err = s.repo.GetAll(ctx)
	} else {
		orders, err = s.repo.GetAllByCustomer(ctx, customerName)
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}
