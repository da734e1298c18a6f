package notifications

import (
	"context"
	"time"

	"order-manager/internal/features/orders/domain"

	"go.uber.org/zap"
)

// Dispatcher fans a status change out to every configured channel.
// A failing channel does not stop the others.
type Dispatcher struct {
	channels []Channel
	log      *zap.Logger
	now      func() time.Time
}

// NewDispatcher creates a new instance of Dispatcher.
func NewDispatcher(log *zap.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, log: log, now: time.Now}
}

// Send reports whether every channel delivered the notification.
func (d *Dispatcher) Send(ctx context.Context, order *domain.Order, status domain.OrderStatus) bool {
	n := NewNotification(order, status, d.now())

	delivered := true
	for _, ch := range d.channels {
		if err := ch.Notify(ctx, n); err != nil {
			d.log.Warn("Notification failed",
				zap.String("channel", ch.Name()),
				zap.Int64("order_id", order.ID),
				zap.Error(err),
			)
			delivered = false
		}
	}
	return delivered
}
