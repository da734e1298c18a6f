package pricing

import (
	"testing"

	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(name, price string, qty int, t domain.ItemType) domain.OrderItem {
	return domain.OrderItem{Name: name, UnitPrice: d(price), Quantity: qty, Type: t}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCalculateItemDiscount(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.OrderItem
		expected string
	}{
		{
			name:     "Normal full price",
			items:    []domain.OrderItem{item("a", "100", 2, domain.ItemNormal)},
			expected: "200",
		},
		{
			name:     "Ten percent off",
			items:    []domain.OrderItem{item("a", "50", 3, domain.ItemDiscount10)},
			expected: "135",
		},
		{
			name:     "Twenty percent off",
			items:    []domain.OrderItem{item("a", "200", 1, domain.ItemDiscount20)},
			expected: "160",
		},
		{
			name: "Mixed items are summed",
			items: []domain.OrderItem{
				item("produto1", "100", 2, domain.ItemNormal),
				item("produto2", "50", 1, domain.ItemDiscount10),
			},
			expected: "245",
		},
		{
			name: "Unknown type contributes zero",
			items: []domain.OrderItem{
				item("a", "10", 1, domain.ItemNormal),
				item("b", "999", 5, domain.ItemType("desc30")),
			},
			expected: "10",
		},
		{
			name:     "No items",
			items:    nil,
			expected: "0",
		},
		{
			name:     "Negative input is not validated",
			items:    []domain.OrderItem{item("a", "-10", 2, domain.ItemNormal)},
			expected: "-20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, CalculateItemDiscount(tt.items))
		})
	}
}

func TestApplyCustomerDiscount(t *testing.T) {
	total := d("200")

	assertDecimal(t, "190", ApplyCustomerDiscount(total, domain.CustomerVIP))
	assertDecimal(t, "200", ApplyCustomerDiscount(total, domain.CustomerNormal))
	assertDecimal(t, "200", ApplyCustomerDiscount(total, domain.CustomerSpecial))
	assertDecimal(t, "200", ApplyCustomerDiscount(total, domain.CustomerType("unknown")))
}

func TestApplySpecialFee(t *testing.T) {
	assertDecimal(t, "115", ApplySpecialFee(d("100"), true))
	assertDecimal(t, "100", ApplySpecialFee(d("100"), false))
}

func TestPipeline_Total(t *testing.T) {
	p := NewPipeline()

	t.Run("Normal customer", func(t *testing.T) {
		total := p.Total(
			domain.Customer{Name: "João Silva", Type: domain.CustomerNormal},
			[]domain.OrderItem{
				item("produto1", "100", 2, domain.ItemNormal),
				item("produto2", "50", 1, domain.ItemDiscount10),
			},
			false,
		)
		assertDecimal(t, "245", total)
	})

	t.Run("VIP customer", func(t *testing.T) {
		total := p.Total(
			domain.Customer{Name: "Maria Santos", Type: domain.CustomerVIP},
			[]domain.OrderItem{item("produto3", "200", 1, domain.ItemDiscount20)},
			false,
		)
		assertDecimal(t, "152", total)
	})

	t.Run("Special VIP order", func(t *testing.T) {
		total := p.Total(
			domain.Customer{Name: "Maria Santos", Type: domain.CustomerVIP},
			[]domain.OrderItem{item("produto1", "100", 1, domain.ItemNormal)},
			true,
		)
		// 100 × 0.95 × 1.15
		assertDecimal(t, "109.25", total)
	})

	t.Run("Repeated calls are stable", func(t *testing.T) {
		customer := domain.Customer{Name: "Ana", Type: domain.CustomerVIP}
		items := []domain.OrderItem{item("produto2", "33.33", 3, domain.ItemDiscount10)}

		first := p.Total(customer, items, true)
		second := p.Total(customer, items, true)
		assert.True(t, first.Equal(second))
		assertDecimal(t, "33.33", items[0].UnitPrice)
	})
}

func TestPipeline_SwapStage(t *testing.T) {
	p := NewPipeline()
	p.SpecialFee = func(total decimal.Decimal, _ bool) decimal.Decimal { return total.Add(d("5")) }

	total := p.Total(domain.Customer{Type: domain.CustomerNormal}, []domain.OrderItem{item("a", "10", 1, domain.ItemNormal)}, false)
	assertDecimal(t, "15", total)
}
