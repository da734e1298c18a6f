package ports

import (
	"context"

	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// OrderRepository is the secondary port for order persistence.
type OrderRepository interface {
	// Add persists a new order and returns the id assigned by the store.
	Add(ctx context.Context, order *domain.Order) (int64, error)
	// GetByID returns nil, nil when no order has the id.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetAllByCustomer(ctx context.Context, customerName string) ([]domain.Order, error)
	// GetDistinctCustomers returns one entry per customer name.
	GetDistinctCustomers(ctx context.Context) ([]domain.Customer, error)
	CalculateCustomerTotal(ctx context.Context, customerName string) (decimal.Decimal, error)
}

// StockChecker answers availability questions for order items.
type StockChecker interface {
	IsStockSufficient(ctx context.Context, items []domain.OrderItem) (bool, error)
	GetAvailableQuantity(ctx context.Context, productName string) (int, error)
	// Source names the backing store, e.g. "simple_memory".
	Source() string
}

// Notifier emits the customer-facing message for a status change.
type Notifier interface {
	// Send reports whether every channel delivered the notification.
	Send(ctx context.Context, order *domain.Order, status domain.OrderStatus) bool
}

// LoyaltyProgram awards points for delivered orders.
type LoyaltyProgram interface {
	RegisterPoints(ctx context.Context, order *domain.Order) int64
}

// OrderService is the primary port used by the HTTP handlers and the payment service.
type OrderService interface {
	CreateOrder(ctx context.Context, customer domain.Customer, items []domain.OrderItem, isSpecial bool) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, customerName string) ([]domain.Order, error)
}
