// Package strategies holds one settlement strategy per payment method.
package strategies

import (
	"context"

	"order-manager/internal/features/payments/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Strategy settles a payment of one method.
type Strategy interface {
	Method() domain.PaymentMethod
	// Process reports whether the payment went through.
	Process(ctx context.Context, orderID int64, amount decimal.Decimal) (bool, error)
	// ApprovesImmediately is false for methods that settle later, such as boleto.
	ApprovesImmediately() bool
}

type cardStrategy struct{ log *zap.Logger }

func (s cardStrategy) Method() domain.PaymentMethod { return domain.MethodCard }
func (s cardStrategy) ApprovesImmediately() bool    { return true }

func (s cardStrategy) Process(_ context.Context, orderID int64, amount decimal.Decimal) (bool, error) {
	s.log.Info("Processing card payment", zap.Int64("order_id", orderID), zap.String("amount", amount.StringFixed(2)))
	return true, nil
}

type pixStrategy struct{ log *zap.Logger }

func (s pixStrategy) Method() domain.PaymentMethod { return domain.MethodPIX }
func (s pixStrategy) ApprovesImmediately() bool    { return true }

func (s pixStrategy) Process(_ context.Context, orderID int64, amount decimal.Decimal) (bool, error) {
	s.log.Info("Processing PIX payment", zap.Int64("order_id", orderID), zap.String("amount", amount.StringFixed(2)))
	return true, nil
}

type boletoStrategy struct{ log *zap.Logger }

func (s boletoStrategy) Method() domain.PaymentMethod { return domain.MethodBoleto }
func (s boletoStrategy) ApprovesImmediately() bool    { return false }

func (s boletoStrategy) Process(_ context.Context, orderID int64, amount decimal.Decimal) (bool, error) {
	s.log.Info("Generating boleto", zap.Int64("order_id", orderID), zap.String("amount", amount.StringFixed(2)))
	return true, nil
}

// Default returns the card, PIX and boleto strategies keyed by method.
func Default(log *zap.Logger) map[domain.PaymentMethod]Strategy {
	registry := map[domain.PaymentMethod]Strategy{}
	for _, s := range []Strategy{cardStrategy{log}, pixStrategy{log}, boletoStrategy{log}} {
		registry[s.Method()] = s
	}
	return registry
}
