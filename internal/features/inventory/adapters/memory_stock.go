// Package adapters provides the stock sources consulted before an order is accepted.
package adapters

import (
	"context"
	"strings"

	"order-manager/internal/features/orders/domain"
)

// DefaultStock is the catalogue shipped with the store.
var DefaultStock = map[string]int{
	"produto1": 100,
	"produto2": 50,
	"produto3": 75,
}

// MemoryStock answers from a fixed in-process map.
type MemoryStock struct {
	quantities map[string]int
}

// NewMemoryStock copies quantities; a nil map yields DefaultStock.
func NewMemoryStock(quantities map[string]int) *MemoryStock {
	if quantities == nil {
		quantities = DefaultStock
	}
	m := make(map[string]int, len(quantities))
	for name, qty := range quantities {
		m[strings.TrimSpace(name)] = qty
	}
	return &MemoryStock{quantities: m}
}

// GetAvailableQuantity returns 0 for unknown products.
func (s *MemoryStock) GetAvailableQuantity(_ context.Context, productName string) (int, error) {
	return s.quantities[strings.TrimSpace(productName)], nil
}

// IsStockSufficient reports whether every item fits in the available quantity.
func (s *MemoryStock) IsStockSufficient(ctx context.Context, items []domain.OrderItem) (bool, error) {
	return checkItems(ctx, s, items)
}

func (s *MemoryStock) Source() string { return "simple_memory" }

type quantityReader interface {
	GetAvailableQuantity(ctx context.Context, productName string) (int, error)
}

func checkItems(ctx context.Context, r quantityReader, items []domain.OrderItem) (bool, error) {
	for _, item := range items {
		available, err := r.GetAvailableQuantity(ctx, item.Name)
		if err != nil {
			return false, err
		}
		if available < item.Quantity {
			return false, nil
		}
	}
	return true, nil
}
