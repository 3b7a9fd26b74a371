package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TaxRate is the sales tax applied at checkout, in basis points (800 = 8%)
const TaxRate int64 = 800

// Currency of every storefront order
const Currency = "USD"

// OrderItem is one product line of an order, priced at checkout time
type OrderItem struct {
	ProductSlug string
	ProductName string
	Price       int64
}

// Order represents a placed checkout with business logic
type Order struct {
	ID         string
	Reference  string
	FirstName  string
	LastName   string
	PostalCode string
	Items      []OrderItem
	Subtotal   int64
	Tax        int64
	Total      int64
	Currency   string
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Domain errors
var (
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderAlreadyCompleted   = errors.New("order is already completed")
	ErrOrderAlreadyCancelled   = errors.New("order is already cancelled")
)

// NewOrder creates a pending order for the customer and products with validation.
// An order without items is allowed.
func NewOrder(info CheckoutInfo, products []Product) (*Order, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now()

	order := &Order{
		ID:         id,
		Reference:  "ORDER-" + strings.ToUpper(id[:8]),
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		PostalCode: info.PostalCode,
		Items:      make([]OrderItem, 0, len(products)),
		Currency:   Currency,
		Status:     OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, p := range products {
		order.Items = append(order.Items, OrderItem{
			ProductSlug: p.Slug,
			ProductName: p.Name,
			Price:       p.Price,
		})
		order.Subtotal += p.Price
	}
	order.Tax = CalculateTax(order.Subtotal)
	order.Total = order.Subtotal + order.Tax

	return order, nil
}

// CalculateTax returns the tax for subtotal in cents, rounded half up
func CalculateTax(subtotal int64) int64 {
	return (subtotal*TaxRate + 5000) / 10000
}

// Complete marks the order as completed
func (o *Order) Complete() error {
	switch o.Status {
	case OrderStatusCompleted:
		return ErrOrderAlreadyCompleted
	case OrderStatusCancelled:
		return fmt.Errorf("%w: cannot complete a cancelled order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusCancelled:
		return ErrOrderAlreadyCancelled
	case OrderStatusCompleted:
		return fmt.Errorf("%w: cannot cancel a completed order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ProductNames returns the item names in order
func (o *Order) ProductNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.ProductName)
	}
	return names
}

// GetFormattedTotal returns the total formatted with currency
func (o *Order) GetFormattedTotal() string {
	return fmt.Sprintf("%s %s", FormatCents(o.Total), o.Currency)
}
