package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerType classifies a customer for discounts and loyalty.
type CustomerType string

const (
	CustomerNormal  CustomerType = "normal"
	CustomerVIP     CustomerType = "vip"
	CustomerSpecial CustomerType = "especial"
)

// ItemType selects the fixed discount applied to an item.
type ItemType string

const (
	// ItemNormal is sold at full price.
	ItemNormal ItemType = "normal"
	// ItemDiscount10 is sold with a 10% reduction.
	ItemDiscount10 ItemType = "desc10"
	// ItemDiscount20 is sold with a 20% reduction.
	ItemDiscount20 ItemType = "desc20"
)

// OrderStatus is the lifecycle state of an order.
// Values are the strings stored in the orders table.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pendente"
	StatusApproved  OrderStatus = "aprovado"
	StatusShipped   OrderStatus = "enviado"
	StatusDelivered OrderStatus = "entregue"
	StatusCanceled  OrderStatus = "cancelado"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Valid reports whether t is one of the known customer types.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerNormal, CustomerVIP, CustomerSpecial:
		return true
	}
	return false
}

// Customer is identified by name; two customers with the same name are the same customer.
type Customer struct {
	Name string       `json:"name"`
	Type CustomerType `json:"customer_type"`
}

// OrderItem is a priced line of an order.
type OrderItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Type      ItemType        `json:"item_type"`
}

// Order is the aggregate for one customer transaction.
type Order struct {
	// ID is zero until the repository assigns one.
	ID       int64       `json:"id"`
	Customer Customer    `json:"customer"`
	Items    []OrderItem `json:"items"`
	// TotalPrice is computed once, at creation, by the pricing pipeline.
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	// IsSpecial adds the special-order fee. It is not persisted.
	IsSpecial bool `json:"is_special"`
}

// NewOrder builds a PENDING order with the given pre-computed total.
func NewOrder(customer Customer, items []OrderItem, total decimal.Decimal, isSpecial bool, now time.Time) *Order {
	return &Order{
		Customer:   customer,
		Items:      append([]OrderItem(nil), items...),
		TotalPrice: total,
		Status:     StatusPending,
		CreatedAt:  now,
		IsSpecial:  isSpecial,
	}
}
