package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/models"
)

// orderRow carries the raw JSONB items payload so it can be decoded
// against the row's type column (the union tag).
type orderRow struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	Phone        string    `db:"phone"`
	Address      *string   `db:"address"`
	Items        []byte    `db:"items"`
	Status       string    `db:"status"`
	Type         string    `db:"type"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r orderRow) toOrder() (*models.Order, error) {
	items, err := models.DecodeOrderItems(r.Type, r.Items)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", r.ID, err)
	}
	return &models.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Address:      r.Address,
		Items:        items,
		Status:       r.Status,
		Type:         r.Type,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// CreateOrder inserts an order and fills in its ID and created_at
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (customer_name, phone, address, items, status, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, order, query,
		order.CustomerName, order.Phone, order.Address, items, order.Status, order.Type)
}

// CreateStoreOrderTx inserts a store order and decrements the stock of
// every line's product, floored at zero, in a single transaction. A
// failure anywhere rolls the whole thing back, so an order never lands
// without its stock bookkeeping.
func (s *Store) CreateStoreOrderTx(ctx context.Context, order *models.Order) error {
	if order.Items.Store == nil {
		return fmt.Errorf("order has no store items payload")
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_name, phone, address, items, status, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, order, query,
		order.CustomerName, order.Phone, order.Address, items, order.Status, order.Type); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Items.Store.Products {
		if _, err := tx.ExecContext(ctx, decreaseStockQuery,
			line.Quantity, line.ProductID); err != nil {
			return fmt.Errorf("decrement stock for product %s: %w", line.ProductID, err)
		}
	}

	return tx.Commit()
}

// GetOrders retrieves all orders, newest first
func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		order, err := r.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return row.toOrder()
}

// GetOrderStatus retrieves just the current status of an order
func (s *Store) GetOrderStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := s.db.GetContext(ctx, &status, "SELECT status FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("order not found: %s", id)
	}
	return status, err
}

// UpdateOrderStatus updates order status
func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, id)
	return err
}
