package loyalty

import (
	"context"
	"testing"

	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name         string
		customerType domain.CustomerType
		total        string
		want         int64
	}{
		{"VIPDoubles", domain.CustomerVIP, "152", 304},
		{"VIPFloorsAfterDoubling", domain.CustomerVIP, "109.25", 218},
		{"NormalFloors", domain.CustomerNormal, "245.99", 245},
		{"SpecialIsOneToOne", domain.CustomerSpecial, "10.5", 10},
		{"Zero", domain.CustomerNormal, "0", 0},
		{"BelowOne", domain.CustomerNormal, "0.99", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Points(tt.customerType, decimal.RequireFromString(tt.total)))
		})
	}
}

func TestProgram_RegisterPoints(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	program := NewProgram(zap.New(core))

	order := &domain.Order{
		ID:         5,
		Customer:   domain.Customer{Name: "Ana", Type: domain.CustomerVIP},
		TotalPrice: decimal.NewFromInt(152),
	}

	points := program.RegisterPoints(context.Background(), order)
	assert.Equal(t, int64(304), points)

	entries := logs.FilterMessage("Loyalty points registered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(304), entries[0].ContextMap()["points"])
	assert.Equal(t, "Ana", entries[0].ContextMap()["customer"])
}
