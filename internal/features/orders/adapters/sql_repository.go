package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"order-manager/internal/core/database"
	"order-manager/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// createdAtLayout is the text format of the created_at column.
const createdAtLayout = "2006-01-02 15:04:05"

const selectOrder = `SELECT id, customer_name, customer_type, items, total_price, status, created_at FROM orders`

// storedItem is the JSON shape of one element of the items column.
type storedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ItemType string  `json:"item_type"`
}

// SQLRepository implements ports.OrderRepository on top of database/sql.
type SQLRepository struct {
	db *database.DB
}

// NewSQLRepository creates a new instance of SQLRepository.
func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// Add inserts the order and returns the id generated by the database.
func (r *SQLRepository) Add(ctx context.Context, order *domain.Order) (int64, error) {
	items, err := encodeItems(order.Items)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`INSERT INTO orders (customer_name, customer_type, items, total_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err = tx.QueryRowContext(ctx, query,
		order.Customer.Name,
		string(order.Customer.Type),
		items,
		order.TotalPrice.InexactFloat64(),
		string(order.Status),
		order.CreatedAt.Format(createdAtLayout),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: commit: %w", err)
	}
	return id, nil
}

// GetByID returns nil, nil when the order does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(selectOrder+` WHERE id = ?`), id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get order %d: %w", id, err)
	}
	return order, nil
}

// UpdateStatus sets the status column. Updating a missing id is not an error.
func (r *SQLRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`), string(status), id); err != nil {
		return fmt.Errorf("repository: update order %d: %w", id, err)
	}
	return tx.Commit()
}

// GetAll returns every order by ascending id.
func (r *SQLRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, selectOrder+` ORDER BY id`)
}

// GetAllByCustomer returns the orders placed under customerName by ascending id.
func (r *SQLRepository) GetAllByCustomer(ctx context.Context, customerName string) ([]domain.Order, error) {
	return r.query(ctx, selectOrder+` WHERE customer_name = ? ORDER BY id`, customerName)
}

// GetDistinctCustomers returns one customer per distinct name, ordered by name.
// The type is the one on that name's latest order.
func (r *SQLRepository) GetDistinctCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT customer_name, customer_type FROM orders
		WHERE id IN (SELECT MAX(id) FROM orders GROUP BY customer_name)
		ORDER BY customer_name`)
	if err != nil {
		return nil, fmt.Errorf("repository: list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var name, customerType string
		if err := rows.Scan(&name, &customerType); err != nil {
			return nil, fmt.Errorf("repository: scan customer: %w", err)
		}
		customers = append(customers, domain.Customer{Name: name, Type: domain.CustomerType(customerType)})
	}
	return customers, rows.Err()
}

// CalculateCustomerTotal sums total_price over the customer's orders, 0 when there are none.
func (r *SQLRepository) CalculateCustomerTotal(ctx context.Context, customerName string) (decimal.Decimal, error) {
	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT SUM(total_price) FROM orders WHERE customer_name = ?`), customerName,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("repository: sum customer %q: %w", customerName, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(total.Float64), nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("repository: list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var order domain.Order
	var name, customerType, items, status, ts string
	var total float64
	if err := s.Scan(&order.ID, &name, &customerType, &items, &total, &status, &ts); err != nil {
		return nil, err
	}

	decoded, err := decodeItems(items)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(createdAtLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", ts, err)
	}

	order.Customer = domain.Customer{Name: name, Type: domain.CustomerType(customerType)}
	order.Items = decoded
	order.TotalPrice = decimal.NewFromFloat(total)
	order.Status = domain.OrderStatus(status)
	order.CreatedAt = createdAt
	return &order, nil
}

func encodeItems(items []domain.OrderItem) (string, error) {
	stored := make([]storedItem, len(items))
	for i, it := range items {
		stored[i] = storedItem{
			Name:     it.Name,
			Price:    it.UnitPrice.InexactFloat64(),
			Quantity: it.Quantity,
			ItemType: string(it.Type),
		}
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("repository: encode items: %w", err)
	}
	return string(b), nil
}

func decodeItems(raw string) ([]domain.OrderItem, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]domain.OrderItem, len(stored))
	for i, s := range stored {
		items[i] = domain.OrderItem{
			Name:      s.Name,
			UnitPrice: decimal.NewFromFloat(s.Price),
			Quantity:  s.Quantity,
			Type:      domain.ItemType(s.ItemType),
		}
	}
	return items, nil
}
