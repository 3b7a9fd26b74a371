package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/swaglabs/storefront/internal/models"
)

// MemoryOrderRepository keeps orders in process memory. It is used when no
// database is configured and by the end-to-end suite.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewMemoryOrderRepository creates an empty in-memory repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// CreateOrder stores a copy of order
func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Reference]; exists {
		return fmt.Errorf("failed to create order: duplicate reference %s", order.Reference)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.Reference] = copyOrder(*order)

	return nil
}

// GetOrderByReference returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}
	o := copyOrder(order)
	return &o, nil
}

// UpdateOrderStatus updates the status of a stored order
func (r *MemoryOrderRepository) UpdateOrderStatus(reference, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[reference]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}
	order.Status = models.OrderStatus(status)
	order.UpdatedAt = time.Now()
	r.orders[reference] = order

	return nil
}

// Len returns the number of stored orders
func (r *MemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
