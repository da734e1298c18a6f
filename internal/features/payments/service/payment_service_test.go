package service

import (
	"context"
	"errors"
	"testing"

	orderdomain "order-manager/internal/features/orders/domain"
	"order-manager/internal/features/payments/domain"
	"order-manager/internal/features/payments/strategies"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderService is a mock implementation of ports.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, customer orderdomain.Customer, items []orderdomain.OrderItem, isSpecial bool) (int64, error) {
	args := m.Called(ctx, customer, items, isSpecial)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id int64, status orderdomain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id int64) (*orderdomain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderdomain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, customerName string) ([]orderdomain.Order, error) {
	args := m.Called(ctx, customerName)
	return args.Get(0).([]orderdomain.Order), args.Error(1)
}

// stubStrategy lets tests control the outcome of Process.
type stubStrategy struct {
	processed bool
	err       error
}

func (s stubStrategy) Method() domain.PaymentMethod { return "stub" }
func (s stubStrategy) ApprovesImmediately() bool    { return true }

func (s stubStrategy) Process(context.Context, int64, decimal.Decimal) (bool, error) {
	return s.processed, s.err
}

func order152() *orderdomain.Order {
	return &orderdomain.Order{
		ID:         1,
		Customer:   orderdomain.Customer{Name: "Ana", Type: orderdomain.CustomerVIP},
		TotalPrice: decimal.NewFromInt(152),
		Status:     orderdomain.StatusPending,
	}
}

func TestPaymentService_ProcessPayment(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	for _, method := range []domain.PaymentMethod{domain.MethodCard, domain.MethodPIX, domain.MethodBoleto} {
		t.Run("Approves_"+string(method), func(t *testing.T) {
			orders := new(MockOrderService)
			svc := NewPaymentService(orders, strategies.Default(log), log)

			orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()
			orders.On("UpdateOrderStatus", ctx, int64(1), orderdomain.StatusApproved).Return(nil).Once()

			result, err := svc.ProcessPayment(ctx, 1, method, decimal.NewFromInt(152))
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.True(t, result.Approved)
			assert.Equal(t, method, result.Method)
			assert.True(t, result.Amount.Equal(decimal.NewFromInt(152)))
			_, err = uuid.Parse(result.TransactionID)
			assert.NoError(t, err)
			orders.AssertExpectations(t)
		})
	}

	t.Run("Overpayment", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewPaymentService(orders, strategies.Default(log), log)

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()
		orders.On("UpdateOrderStatus", ctx, int64(1), orderdomain.StatusApproved).Return(nil).Once()

		_, err := svc.ProcessPayment(ctx, 1, domain.MethodPIX, decimal.NewFromInt(200))
		assert.NoError(t, err)
	})

	t.Run("InsufficientPayment", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewPaymentService(orders, strategies.Default(log), log)

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()

		result, err := svc.ProcessPayment(ctx, 1, domain.MethodCard, decimal.RequireFromString("151.99"))
		assert.ErrorIs(t, err, orderdomain.ErrInsufficientPayment)
		assert.Nil(t, result)
		orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewPaymentService(orders, strategies.Default(log), log)

		orders.On("GetOrder", ctx, int64(9)).Return(nil, orderdomain.ErrOrderNotFound).Once()

		_, err := svc.ProcessPayment(ctx, 9, domain.MethodCard, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, orderdomain.ErrOrderNotFound)
		orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidMethod", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewPaymentService(orders, strategies.Default(log), log)

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()

		_, err := svc.ProcessPayment(ctx, 1, "bitcoin", decimal.NewFromInt(152))
		assert.ErrorIs(t, err, orderdomain.ErrInvalidPaymentMethod)
		orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Declined", func(t *testing.T) {
		orders := new(MockOrderService)
		registry := map[domain.PaymentMethod]strategies.Strategy{"stub": stubStrategy{processed: false}}
		svc := NewPaymentService(orders, registry, log)

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()

		result, err := svc.ProcessPayment(ctx, 1, "stub", decimal.NewFromInt(152))
		require.NoError(t, err)
		assert.False(t, result.Approved)
		orders.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StrategyError", func(t *testing.T) {
		orders := new(MockOrderService)
		registry := map[domain.PaymentMethod]strategies.Strategy{"stub": stubStrategy{err: errors.New("gateway timeout")}}
		svc := NewPaymentService(orders, registry, log)

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()

		_, err := svc.ProcessPayment(ctx, 1, "stub", decimal.NewFromInt(152))
		assert.ErrorContains(t, err, "gateway timeout")
	})

	t.Run("UpdateErrorPropagates", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewPaymentService(orders, strategies.Default(log), log)
		updateErr := errors.New("db locked")

		orders.On("GetOrder", ctx, int64(1)).Return(order152(), nil).Once()
		orders.On("UpdateOrderStatus", ctx, int64(1), orderdomain.StatusApproved).Return(updateErr).Once()

		result, err := svc.ProcessPayment(ctx, 1, domain.MethodCard, decimal.NewFromInt(152))
		assert.ErrorIs(t, err, updateErr)
		assert.Nil(t, result)
	})
}
