package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []OrderItem{
		{Name: "produto1", UnitPrice: decimal.NewFromInt(100), Quantity: 2, Type: ItemNormal},
	}

	order := NewOrder(Customer{Name: "João Silva", Type: CustomerNormal}, items, decimal.NewFromInt(200), true, now)

	assert.Zero(t, order.ID)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, now, order.CreatedAt)
	assert.True(t, order.IsSpecial)
	assert.True(t, decimal.NewFromInt(200).Equal(order.TotalPrice))

	// The order keeps its own copy of the items.
	items[0].Quantity = 99
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrder_MarshalJSON(t *testing.T) {
	order := Order{
		ID:         1,
		Customer:   Customer{Name: "Maria Santos", Type: CustomerVIP},
		TotalPrice: decimal.RequireFromString("152"),
		Status:     StatusApproved,
		Items: []OrderItem{
			{Name: "produto3", UnitPrice: decimal.NewFromInt(200), Quantity: 1, Type: ItemDiscount20},
		},
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	jsonString := string(data)
	assert.Contains(t, jsonString, `"status":"aprovado"`)
	assert.Contains(t, jsonString, `"customer_type":"vip"`)
	assert.Contains(t, jsonString, `"item_type":"desc20"`)
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCanceled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("PENDING").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestCustomerType_Valid(t *testing.T) {
	assert.True(t, CustomerNormal.Valid())
	assert.True(t, CustomerVIP.Valid())
	assert.True(t, CustomerSpecial.Valid())
	assert.False(t, CustomerType("premium").Valid())
}
