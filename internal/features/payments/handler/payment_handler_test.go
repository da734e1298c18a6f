package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	orderdomain "order-manager/internal/features/orders/domain"
	"order-manager/internal/features/payments/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentProcessor is a mock implementation of PaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) ProcessPayment(ctx context.Context, orderID int64, method domain.PaymentMethod, amount decimal.Decimal) (*domain.PaymentResult, error) {
	args := m.Called(ctx, orderID, method, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

func setupApp(service *MockPaymentProcessor) *fiber.App {
	app := fiber.New()
	NewPaymentHandler(service).Register(app)
	return app
}

func post(t *testing.T, app *fiber.App, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func amountIs(v string) any {
	want := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestPaymentHandler_ProcessPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockPaymentProcessor)
		app := setupApp(mockService)

		result := &domain.PaymentResult{
			OrderID:       1,
			TransactionID: "5f0c6a1e-0000-4000-8000-000000000001",
			Method:        domain.MethodPIX,
			Amount:        decimal.NewFromInt(152),
			Approved:      true,
		}
		mockService.On("ProcessPayment", mock.Anything, int64(1), domain.MethodPIX, amountIs("152")).Return(result, nil).Once()

		resp := post(t, app, "/orders/1/payments", `{"method":"pix","amount":152}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.PaymentResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.Approved)
		assert.Equal(t, result.TransactionID, got.TransactionID)
		mockService.AssertExpectations(t)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{"NotFound", orderdomain.ErrOrderNotFound, http.StatusNotFound},
		{"Insufficient", orderdomain.ErrInsufficientPayment, http.StatusPaymentRequired},
		{"InvalidMethod", orderdomain.ErrInvalidPaymentMethod, http.StatusUnprocessableEntity},
		{"Internal", errors.New("db error"), http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPaymentProcessor)
			app := setupApp(mockService)

			mockService.On("ProcessPayment", mock.Anything, int64(2), domain.MethodCard, amountIs("10.5")).Return(nil, tt.err).Once()

			resp := post(t, app, "/orders/2/payments", `{"method":"cartao","amount":"10.50"}`)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	t.Run("MissingMethod", func(t *testing.T) {
		mockService := new(MockPaymentProcessor)
		app := setupApp(mockService)

		resp := post(t, app, "/orders/2/payments", `{"amount":10}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockPaymentProcessor)
		app := setupApp(mockService)

		resp := post(t, app, "/orders/0/payments", `{"method":"pix","amount":10}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
