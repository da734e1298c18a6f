package service

import (
	"context"
	"fmt"
	"io"

	orderdomain "order-manager/internal/features/orders/domain"
	"order-manager/internal/features/reports/domain"
	"order-manager/internal/features/reports/render"

	"github.com/shopspring/decimal"
)

// OrderSource is the read side of ports.OrderRepository used by reports.
type OrderSource interface {
	GetAll(ctx context.Context) ([]orderdomain.Order, error)
	GetDistinctCustomers(ctx context.Context) ([]orderdomain.Customer, error)
	CalculateCustomerTotal(ctx context.Context, customerName string) (decimal.Decimal, error)
}

type generator func(ctx context.Context) (domain.Report, error)

// ReportService builds reports from stored orders.
type ReportService struct {
	orders     OrderSource
	generators map[domain.ReportType]generator
}

// NewReportService creates a new instance of ReportService.
func NewReportService(orders OrderSource) *ReportService {
	s := &ReportService{orders: orders}
	s.generators = map[domain.ReportType]generator{
		domain.ReportSales:     s.sales,
		domain.ReportCustomers: s.customers,
	}
	return s
}

// Generate builds the report of the given type.
func (s *ReportService) Generate(ctx context.Context, reportType domain.ReportType) (domain.Report, error) {
	gen, ok := s.generators[reportType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownReport, reportType)
	}
	return gen(ctx)
}

// Write generates a report and renders it to w, returning the content type.
func (s *ReportService) Write(ctx context.Context, w io.Writer, reportType domain.ReportType, format render.Format) (string, error) {
	renderer, err := render.For(format)
	if err != nil {
		return "", err
	}
	report, err := s.Generate(ctx, reportType)
	if err != nil {
		return "", err
	}
	if err := renderer.Render(w, report); err != nil {
		return "", fmt.Errorf("service: render %s report: %w", reportType, err)
	}
	return renderer.ContentType(), nil
}

func (s *ReportService) sales(ctx context.Context) (domain.Report, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: load orders: %w", err)
	}

	report := &domain.SalesReport{Orders: make([]domain.SalesLine, 0, len(orders)), GrandTotal: decimal.Zero}
	for _, o := range orders {
		report.Orders = append(report.Orders, domain.SalesLine{
			OrderID:  o.ID,
			Customer: o.Customer.Name,
			Total:    o.TotalPrice,
			Status:   o.Status,
		})
		report.GrandTotal = report.GrandTotal.Add(o.TotalPrice)
	}
	return report, nil
}

func (s *ReportService) customers(ctx context.Context) (domain.Report, error) {
	customers, err := s.orders.GetDistinctCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: load customers: %w", err)
	}

	report := &domain.CustomersReport{Customers: make([]domain.CustomerLine, 0, len(customers))}
	for _, c := range customers {
		total, err := s.orders.CalculateCustomerTotal(ctx, c.Name)
		if err != nil {
			return nil, fmt.Errorf("service: total for %s: %w", c.Name, err)
		}
		report.Customers = append(report.Customers, domain.CustomerLine{
			Name:       c.Name,
			Type:       c.Type,
			TotalSpent: total,
		})
	}
	return report, nil
}
