package service

import (
	"context"
	"fmt"
	"time"

	orderdomain "order-manager/internal/features/orders/domain"
	"order-manager/internal/features/orders/ports"
	"order-manager/internal/features/payments/domain"
	"order-manager/internal/features/payments/strategies"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// approveDeferredMethods moves orders paid by boleto to APPROVED as soon as
// the boleto is generated, like card and PIX payments.
const approveDeferredMethods = true

// PaymentService validates payments against an order and approves it.
type PaymentService struct {
	orders     ports.OrderService
	strategies map[domain.PaymentMethod]strategies.Strategy
	log        *zap.Logger
	now        func() time.Time
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(orders ports.OrderService, registry map[domain.PaymentMethod]strategies.Strategy, log *zap.Logger) *PaymentService {
	return &PaymentService{
		orders:     orders,
		strategies: registry,
		log:        log,
		now:        time.Now,
	}
}

// ProcessPayment settles amountPaid for the order with the given method.
// Paying exactly the total is accepted; nothing changes on any error.
func (s *PaymentService) ProcessPayment(ctx context.Context, orderID int64, method domain.PaymentMethod, amountPaid decimal.Decimal) (*domain.PaymentResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if amountPaid.LessThan(order.TotalPrice) {
		s.log.Warn("Insufficient payment",
			zap.Int64("order_id", orderID),
			zap.String("paid", amountPaid.StringFixed(2)),
			zap.String("total", order.TotalPrice.StringFixed(2)),
		)
		return nil, orderdomain.ErrInsufficientPayment
	}

	strategy, ok := s.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", orderdomain.ErrInvalidPaymentMethod, method)
	}

	processed, err := strategy.Process(ctx, orderID, amountPaid)
	if err != nil {
		return nil, fmt.Errorf("service: %s payment for order %d: %w", method, orderID, err)
	}

	approve := processed && (strategy.ApprovesImmediately() || approveDeferredMethods)
	if approve {
		if err := s.orders.UpdateOrderStatus(ctx, orderID, orderdomain.StatusApproved); err != nil {
			return nil, err
		}
	}

	result := &domain.PaymentResult{
		OrderID:       orderID,
		TransactionID: uuid.NewString(),
		Method:        method,
		Amount:        amountPaid,
		Approved:      approve,
		ProcessedAt:   s.now(),
	}

	s.log.Info("Payment processed",
		zap.Int64("order_id", orderID),
		zap.String("method", string(method)),
		zap.String("transaction_id", result.TransactionID),
		zap.Bool("approved", approve),
	)

	return result, nil
}
