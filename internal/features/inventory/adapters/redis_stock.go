package adapters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"order-manager/internal/core/cache"
	"order-manager/internal/features/orders/domain"
)

const stockKeyPrefix = "stock:"

// RedisStock reads quantities stored under "stock:<name>" keys.
type RedisStock struct {
	cache cache.Cache
}

// NewRedisStock creates a new instance of RedisStock.
func NewRedisStock(c cache.Cache) *RedisStock {
	return &RedisStock{cache: c}
}

func stockKey(productName string) string {
	return stockKeyPrefix + strings.TrimSpace(productName)
}

// Seed writes the given quantities without expiration. A quantity of zero or
// less removes the product's key.
func (s *RedisStock) Seed(ctx context.Context, quantities map[string]int) error {
	for name, qty := range quantities {
		if qty <= 0 {
			if err := s.cache.Delete(ctx, stockKey(name)); err != nil {
				return fmt.Errorf("inventory: clear %s: %w", name, err)
			}
			continue
		}
		if err := s.cache.Set(ctx, stockKey(name), []byte(strconv.Itoa(qty)), 0); err != nil {
			return fmt.Errorf("inventory: seed %s: %w", name, err)
		}
	}
	return nil
}

// GetAvailableQuantity returns 0 when the product has no key.
func (s *RedisStock) GetAvailableQuantity(ctx context.Context, productName string) (int, error) {
	raw, err := s.cache.Get(ctx, stockKey(productName))
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("inventory: read %s: %w", productName, err)
	}

	qty, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("inventory: invalid quantity for %s: %w", productName, err)
	}
	return qty, nil
}

// IsStockSufficient reports whether every item fits in the available quantity.
func (s *RedisStock) IsStockSufficient(ctx context.Context, items []domain.OrderItem) (bool, error) {
	return checkItems(ctx, s, items)
}

func (s *RedisStock) Source() string { return "redis" }
