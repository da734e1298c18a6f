package domain

import (
	"errors"
	"fmt"
	"strconv"

	orderdomain "order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownReport is returned for a report type with no generator.
	ErrUnknownReport = errors.New("unknown report type")
	// ErrUnknownFormat is returned for an output format with no renderer.
	ErrUnknownFormat = errors.New("unknown report format")
)

// ReportType names a report. Values match the legacy report names.
type ReportType string

const (
	ReportSales     ReportType = "vendas"
	ReportCustomers ReportType = "clientes"
)

// Report is a tabular report that can also be read as plain text lines.
type Report interface {
	Title() string
	Lines() []string
	Header() []string
	Rows() [][]string
}

// Money formats an amount the way the store prints prices.
func Money(d decimal.Decimal) string {
	return "R$" + d.StringFixed(2)
}

// SalesLine is one order in the sales report.
type SalesLine struct {
	OrderID  int64                   `json:"order_id"`
	Customer string                  `json:"customer"`
	Total    decimal.Decimal         `json:"total"`
	Status   orderdomain.OrderStatus `json:"status"`
}

// SalesReport lists every order and the grand total.
type SalesReport struct {
	Orders     []SalesLine     `json:"orders"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

func (r *SalesReport) Title() string { return "=== RELATÓRIO DE VENDAS ===" }

func (r *SalesReport) Lines() []string {
	lines := make([]string, 0, len(r.Orders)+1)
	for _, o := range r.Orders {
		lines = append(lines, fmt.Sprintf("Pedido #%d Cliente: %s Total: %s Status: %s",
			o.OrderID, o.Customer, Money(o.Total), o.Status))
	}
	return append(lines, "Total Geral: "+Money(r.GrandTotal))
}

func (r *SalesReport) Header() []string {
	return []string{"order_id", "customer", "total", "status"}
}

func (r *SalesReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Orders))
	for _, o := range r.Orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.OrderID, 10), o.Customer, o.Total.StringFixed(2), string(o.Status),
		})
	}
	return rows
}

// CustomerLine is one customer in the customers report.
type CustomerLine struct {
	Name       string                   `json:"name"`
	Type       orderdomain.CustomerType `json:"customer_type"`
	TotalSpent decimal.Decimal          `json:"total_spent"`
}

// CustomersReport lists distinct customers and what they spent.
type CustomersReport struct {
	Customers []CustomerLine `json:"customers"`
}

func (r *CustomersReport) Title() string { return "=== RELATÓRIO DE CLIENTES ===" }

func (r *CustomersReport) Lines() []string {
	lines := make([]string, 0, len(r.Customers))
	for _, c := range r.Customers {
		lines = append(lines, fmt.Sprintf("Cliente: %s (%s) - Total gasto: %s", c.Name, c.Type, Money(c.TotalSpent)))
	}
	return lines
}

func (r *CustomersReport) Header() []string {
	return []string{"name", "customer_type", "total_spent"}
}

func (r *CustomersReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Customers))
	for _, c := range r.Customers {
		rows = append(rows, []string{c.Name, string(c.Type), c.TotalSpent.StringFixed(2)})
	}
	return rows
}
