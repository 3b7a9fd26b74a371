package services

import (
	"sync"

	"github.com/swaglabs/storefront/internal/models"
)

// CartView is a read-only copy of a session's cart
type CartView struct {
	Items    []models.Product
	Info     *models.CheckoutInfo
	Subtotal int64
	Tax      int64
	Total    int64
}

// Count returns the number of products in the cart
func (v CartView) Count() int {
	return len(v.Items)
}

// CartService keeps one cart per browser session. It is safe for concurrent use.
type CartService struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

// NewCartService creates an empty cart store
func NewCartService() *CartService {
	return &CartService{
		carts: make(map[string]*models.Cart),
	}
}

// cart returns the session's cart, creating it on first use. Callers hold mu.
func (s *CartService) cart(sessionID string) *models.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = models.NewCart(sessionID)
		s.carts[sessionID] = c
	}
	return c
}

// Add puts a product into the session's cart
func (s *CartService) Add(sessionID, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).Add(slug)
}

// Remove takes a product out of the session's cart
func (s *CartService) Remove(sessionID, slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).Remove(slug)
}

// SetCheckoutInfo stores the validated customer information for the session
func (s *CartService) SetCheckoutInfo(sessionID string, info models.CheckoutInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Info = &info
}

// Clear empties the session's cart
func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// View returns a copy of the session's cart with totals
func (s *CartService) View(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	view := CartView{
		Items:    c.Items(),
		Subtotal: c.Subtotal(),
	}
	if c.Info != nil {
		info := *c.Info
		view.Info = &info
	}
	view.Tax = models.CalculateTax(view.Subtotal)
	view.Total = view.Subtotal + view.Tax

	return view
}
