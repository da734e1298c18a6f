package notifications

import (
	"context"

	"order-manager/internal/features/orders/domain"

	"go.uber.org/zap"
)

// EmailChannel sends the status message by email. Special orders get a
// second email when they are received.
type EmailChannel struct {
	log *zap.Logger
}

func NewEmailChannel(log *zap.Logger) *EmailChannel {
	return &EmailChannel{log: log}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Notify(_ context.Context, n Notification) error {
	c.send(n, n.Message)
	if n.Special && n.Status == domain.StatusPending {
		c.send(n, specialMessage)
	}
	return nil
}

func (c *EmailChannel) send(n Notification, message string) {
	c.log.Info("Sending email",
		zap.String("to", n.Customer),
		zap.Int64("order_id", n.OrderID),
		zap.String("message", message),
	)
}

// SMSChannel only texts the customer when an order is approved.
type SMSChannel struct {
	log *zap.Logger
}

func NewSMSChannel(log *zap.Logger) *SMSChannel {
	return &SMSChannel{log: log}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Notify(_ context.Context, n Notification) error {
	if n.Status != domain.StatusApproved {
		return nil
	}
	c.log.Info("Sending SMS",
		zap.String("to", n.Customer),
		zap.Int64("order_id", n.OrderID),
		zap.String("message", n.Message),
	)
	return nil
}

// WhatsAppChannel messages the customer on every status change.
type WhatsAppChannel struct {
	log *zap.Logger
}

func NewWhatsAppChannel(log *zap.Logger) *WhatsAppChannel {
	return &WhatsAppChannel{log: log}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Notify(_ context.Context, n Notification) error {
	c.log.Info("Sending WhatsApp message",
		zap.String("to", n.Customer),
		zap.Int64("order_id", n.OrderID),
		zap.String("message", n.Message),
	)
	return nil
}
