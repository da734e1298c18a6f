// Package pricing computes order totals in three chained stages:
// item discounts, then the customer discount, then the special-order fee.
// Every stage is a pure function; no rounding is applied.
package pricing

import (
	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

var (
	itemFactors = map[domain.ItemType]decimal.Decimal{
		domain.ItemNormal:     decimal.NewFromInt(1),
		domain.ItemDiscount10: decimal.RequireFromString("0.90"),
		domain.ItemDiscount20: decimal.RequireFromString("0.80"),
	}

	customerFactors = map[domain.CustomerType]decimal.Decimal{
		domain.CustomerVIP: decimal.RequireFromString("0.95"),
	}

	specialFeeFactor = decimal.RequireFromString("1.15")
	one              = decimal.NewFromInt(1)
)

// ItemDiscountFunc sums the discounted price of all items.
type ItemDiscountFunc func(items []domain.OrderItem) decimal.Decimal

// CustomerDiscountFunc applies the customer's discount to a running total.
type CustomerDiscountFunc func(total decimal.Decimal, customer domain.Customer) decimal.Decimal

// SpecialFeeFunc applies the special-order fee to a running total.
type SpecialFeeFunc func(total decimal.Decimal, isSpecial bool) decimal.Decimal

// ItemFactor returns the price multiplier for an item type.
// Unknown types get zero, so they contribute nothing to the total.
func ItemFactor(t domain.ItemType) decimal.Decimal {
	if f, ok := itemFactors[t]; ok {
		return f
	}
	return decimal.Zero
}

// CalculateItemDiscount returns Σ unit_price × quantity × factor(type).
func CalculateItemDiscount(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Mul(ItemFactor(item.Type))
		total = total.Add(line)
	}
	return total
}

// CustomerFactor returns the multiplier for a customer type: 0.95 for VIP, 1 otherwise.
func CustomerFactor(t domain.CustomerType) decimal.Decimal {
	if f, ok := customerFactors[t]; ok {
		return f
	}
	return one
}

// ApplyCustomerDiscount multiplies total by the factor of customerType.
func ApplyCustomerDiscount(total decimal.Decimal, customerType domain.CustomerType) decimal.Decimal {
	return total.Mul(CustomerFactor(customerType))
}

// CustomerDiscount adapts ApplyCustomerDiscount to CustomerDiscountFunc.
func CustomerDiscount(total decimal.Decimal, customer domain.Customer) decimal.Decimal {
	return ApplyCustomerDiscount(total, customer.Type)
}

// ApplySpecialFee adds 15% to total when isSpecial is set.
func ApplySpecialFee(total decimal.Decimal, isSpecial bool) decimal.Decimal {
	if isSpecial {
		return total.Mul(specialFeeFactor)
	}
	return total
}

// Pipeline chains the three stages. Any stage may be swapped independently.
type Pipeline struct {
	ItemDiscount     ItemDiscountFunc
	CustomerDiscount CustomerDiscountFunc
	SpecialFee       SpecialFeeFunc
}

// NewPipeline returns the standard pipeline.
func NewPipeline() Pipeline {
	return Pipeline{
		ItemDiscount:     CalculateItemDiscount,
		CustomerDiscount: CustomerDiscount,
		SpecialFee:       ApplySpecialFee,
	}
}

// Total runs the stages in order. It never fails; inputs are not validated.
func (p Pipeline) Total(customer domain.Customer, items []domain.OrderItem, isSpecial bool) decimal.Decimal {
	total := p.ItemDiscount(items)
	total = p.CustomerDiscount(total, customer)
	return p.SpecialFee(total, isSpecial)
}
