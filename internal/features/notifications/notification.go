// Package notifications tells customers about order status changes over
// email, SMS, WhatsApp, push webhook and Kafka.
package notifications

import (
	"context"
	"time"

	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

const (
	defaultMessage = "Status atualizado!"
	specialMessage = "Pedido especial recebido!"
)

var statusMessages = map[domain.OrderStatus]string{
	domain.StatusPending:   "Pedido recebido!",
	domain.StatusApproved:  "Pedido aprovado!",
	domain.StatusShipped:   "Pedido enviado!",
	domain.StatusDelivered: "Pedido entregue!",
}

// MessageFor returns the customer-facing text for a status.
func MessageFor(status domain.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return defaultMessage
}

// Notification is what every channel receives for one status change.
type Notification struct {
	OrderID      int64               `json:"order_id"`
	Customer     string              `json:"customer"`
	CustomerType domain.CustomerType `json:"customer_type"`
	Status       domain.OrderStatus  `json:"status"`
	Message      string              `json:"message"`
	Total        decimal.Decimal     `json:"total"`
	Special      bool                `json:"special"`
	Timestamp    time.Time           `json:"timestamp"`
}

// NewNotification builds the notification of order entering status.
func NewNotification(order *domain.Order, status domain.OrderStatus, now time.Time) Notification {
	return Notification{
		OrderID:      order.ID,
		Customer:     order.Customer.Name,
		CustomerType: order.Customer.Type,
		Status:       status,
		Message:      MessageFor(status),
		Total:        order.TotalPrice,
		Special:      order.IsSpecial,
		Timestamp:    now,
	}
}

// Channel delivers notifications over one medium.
type Channel interface {
	Name() string
	Notify(ctx context.Context, n Notification) error
}
