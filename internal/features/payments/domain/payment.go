package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the strategy that settles a payment.
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "cartao"
	MethodPIX    PaymentMethod = "pix"
	MethodBoleto PaymentMethod = "boleto"
)

// PaymentResult describes a processed payment.
type PaymentResult struct {
	OrderID       int64           `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	// Approved is true when the order was moved to APPROVED.
	Approved    bool      `json:"approved"`
	ProcessedAt time.Time `json:"processed_at"`
}
