// Package loyalty awards points to customers when their orders are delivered.
package loyalty

import (
	"context"

	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var vipMultiplier = decimal.NewFromInt(2)

// Points is floor(total × 2) for VIP customers and floor(total) for everyone else.
func Points(customerType domain.CustomerType, total decimal.Decimal) int64 {
	if customerType == domain.CustomerVIP {
		total = total.Mul(vipMultiplier)
	}
	return total.Floor().IntPart()
}

// Program logs point awards. Balances are not kept.
type Program struct {
	log *zap.Logger
}

// NewProgram creates a new instance of Program.
func NewProgram(log *zap.Logger) *Program {
	return &Program{log: log}
}

// RegisterPoints computes and records the award for a delivered order.
func (p *Program) RegisterPoints(_ context.Context, order *domain.Order) int64 {
	points := Points(order.Customer.Type, order.TotalPrice)
	p.log.Info("Loyalty points registered",
		zap.String("customer", order.Customer.Name),
		zap.Int64("order_id", order.ID),
		zap.Int64("points", points),
	)
	return points
}
