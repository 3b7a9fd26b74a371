package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByReference(reference string) (*models.Order, error)
	UpdateOrderStatus(reference, status string) error
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(info models.CheckoutInfo, items []models.Product) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder records a pending order for the checkout and then completes it
func (s *OrderServiceImpl) PlaceOrder(info models.CheckoutInfo, items []models.Product) (*models.Order, error) {
	// Create order using domain factory method
	order, err := models.NewOrder(info, items)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Use domain methods to transition state
	if err := order.Complete(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateOrderStatus(order.Reference, string(order.Status)); err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reference": order.Reference,
		"items":     len(order.Items),
		"total":     order.Total,
	}).Info("Order placed")

	return order, nil
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
