package handler

import (
	"errors"
	"net/http"
	"strconv"

	"order-manager/internal/core/logger"
	"order-manager/internal/core/server"
	"order-manager/internal/features/orders/domain"
	"order-manager/internal/features/orders/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Register mounts the order routes on router.
func (h *OrderHandler) Register(router fiber.Router) {
	router.Post("/orders", h.CreateOrder)
	router.Get("/orders", h.ListOrders)
	router.Get("/orders/:id", h.GetOrder)
	router.Patch("/orders/:id/status", h.UpdateStatus)
}

// CreateOrderRequest represents the request body for creating an order.
type CreateOrderRequest struct {
	CustomerName string              `json:"customer_name"`
	CustomerType domain.CustomerType `json:"customer_type"`
	Items        []domain.OrderItem  `json:"items"`
	IsSpecial    bool                `json:"is_special"`
}

// CreateOrderResponse carries the id assigned to a new order.
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}

// UpdateStatusRequest represents the request body for a status change.
type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (r CreateOrderRequest) validate() string {
	if r.CustomerName == "" {
		return "customer_name is required"
	}
	if !r.CustomerType.Valid() {
		return "customer_type must be normal, vip or especial"
	}
	if len(r.Items) == 0 {
		return "at least one item is required"
	}
	for _, item := range r.Items {
		if item.Name == "" {
			return "item name is required"
		}
		if item.Quantity <= 0 {
			return "item quantity must be positive"
		}
		if item.UnitPrice.IsNegative() {
			return "item price must not be negative"
		}
	}
	return ""
}

// ParseID reads the :id path parameter.
func ParseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateOrder handles POST /orders.
// @Summary Create an order
// @Description Prices the items, checks stock and stores a new pending order.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order details"
// @Success 201 {object} CreateOrderResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.CustomerType == "" {
		req.CustomerType = domain.CustomerNormal
	}
	if msg := req.validate(); msg != "" {
		return server.Error(c, http.StatusBadRequest, msg)
	}

	customer := domain.Customer{Name: req.CustomerName, Type: req.CustomerType}
	id, err := h.service.CreateOrder(c.UserContext(), customer, req.Items, req.IsSpecial)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return server.Error(c, http.StatusConflict, "Insufficient stock")
		}
		logger.Get().Error("Failed to create order",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(http.StatusCreated).JSON(CreateOrderResponse{ID: id})
}

// GetOrder handles GET /orders/:id.
// @Summary Get Order by ID
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := ParseID(c)
	if !ok {
		return server.Error(c, http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.service.GetOrder(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return server.Error(c, http.StatusNotFound, "Order not found")
		}
		logger.Get().Error("Failed to fetch order",
			zap.Int64("order_id", id),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ListOrders handles GET /orders.
// @Summary List orders
// @Description Lists every order, or only those of one customer.
// @Tags Orders
// @Produce json
// @Param customer query string false "Customer name"
// @Success 200 {array} domain.Order
// @Failure 500 {object} server.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), c.Query("customer"))
	if err != nil {
		logger.Get().Error("Failed to list orders",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.Status(http.StatusOK).JSON(orders)
}

// UpdateStatus handles PATCH /orders/:id/status.
// @Summary Change order status
// @Description Any status may follow any other. Delivering an order awards loyalty points.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := ParseID(c)
	if !ok {
		return server.Error(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if !req.Status.Valid() {
		return server.Error(c, http.StatusBadRequest, "Invalid status")
	}

	if err := h.service.UpdateOrderStatus(c.UserContext(), id, req.Status); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return server.Error(c, http.StatusNotFound, "Order not found")
		}
		logger.Get().Error("Failed to update order status",
			zap.Int64("order_id", id),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Error(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Order status updated",
	})
}
