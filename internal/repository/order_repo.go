package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swaglabs/storefront/internal/models"
)

// ErrOrderNotFound is returned when no order matches a reference
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository with a specific database connection
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder inserts an order and its items in one transaction
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, reference, first_name, last_name, postal_code,
		                    subtotal, tax, total, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	_, err = tx.Exec(query,
		order.ID,
		order.Reference,
		order.FirstName,
		order.LastName,
		order.PostalCode,
		order.Subtotal,
		order.Tax,
		order.Total,
		order.Currency,
		order.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, position, product_slug, product_name, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, item := range order.Items {
		if _, err := tx.Exec(itemQuery, order.ID, i, item.ProductSlug, item.ProductName, item.Price); err != nil {
			return fmt.Errorf("failed to create order item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	return nil
}

// GetOrderByReference retrieves an order and its items by reference
func (r *OrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	query := `
		SELECT id, reference, first_name, last_name, postal_code,
		       subtotal, tax, total, currency, status, created_at, updated_at
		FROM orders
		WHERE reference = $1
	`

	order := &models.Order{}
	err := r.db.QueryRow(query, reference).Scan(
		&order.ID,
		&order.Reference,
		&order.FirstName,
		&order.LastName,
		&order.PostalCode,
		&order.Subtotal,
		&order.Tax,
		&order.Total,
		&order.Currency,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepository) getItems(orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(`
		SELECT product_slug, product_name, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductSlug, &item.ProductName, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

// UpdateOrderStatus updates the status of an order
func (r *OrderRepository) UpdateOrderStatus(reference, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE reference = $3
	`

	result, err := r.db.Exec(query, status, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}

	return nil
}
