package domain

import "errors"

var (
	// ErrInsufficientStock is returned when any item cannot be served from stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNotFound is returned when no order has the requested id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientPayment is returned when the amount paid is below the order total.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrInvalidPaymentMethod is returned when no strategy is registered for a method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
