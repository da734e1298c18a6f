package handler

import (
	"context"
	"errors"
	"net/http"

	"order-manager/internal/core/logger"
	"order-manager/internal/core/server"
	orderdomain "order-manager/internal/features/orders/domain"
	orderhandler "order-manager/internal/features/orders/handler"
	"order-manager/internal/features/payments/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentProcessor is the primary port implemented by service.PaymentService.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, orderID int64, method domain.PaymentMethod, amountPaid decimal.Decimal) (*domain.PaymentResult, error)
}

// PaymentHandler handles HTTP requests for order payments.
type PaymentHandler struct {
	service PaymentProcessor
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service PaymentProcessor) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Register mounts the payment routes on router.
func (h *PaymentHandler) Register(router fiber.Router) {
	router.Post("/orders/:id/payments", h.ProcessPayment)
}

// PaymentRequest represents the request body for paying an order.
type PaymentRequest struct {
	Method domain.PaymentMethod `json:"method"`
	Amount decimal.Decimal      `json:"amount"`
}

// ProcessPayment handles POST /orders/:id/payments.
// @Summary Pay an order
// @Description Accepts card (cartao), pix or boleto. Paying at least the order total approves it.
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param payment body PaymentRequest true "Payment details"
// @Success 200 {object} domain.PaymentResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 402 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /orders/{id}/payments [post]
func (h *PaymentHandler) ProcessPayment(c *fiber.Ctx) error {
	id, ok := orderhandler.ParseID(c)
	if !ok {
		return server.Error(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Method == "" {
		return server.Error(c, http.StatusBadRequest, "method is required")
	}

	result, err := h.service.ProcessPayment(c.UserContext(), id, req.Method, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, orderdomain.ErrOrderNotFound):
			return server.Error(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, orderdomain.ErrInsufficientPayment):
			return server.Error(c, http.StatusPaymentRequired, "Insufficient payment")
		case errors.Is(err, orderdomain.ErrInvalidPaymentMethod):
			return server.Error(c, http.StatusUnprocessableEntity, "Invalid payment method")
		}
		logger.Get().Error("Failed to process payment",
			zap.Int64("order_id", id),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(http.StatusOK).JSON(result)
}
