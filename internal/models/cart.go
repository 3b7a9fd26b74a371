package models

import (
	"errors"
	"strings"
)

// Checkout validation errors, reported in field order
var (
	ErrFirstNameRequired  = errors.New("first name is required")
	ErrLastNameRequired   = errors.New("last name is required")
	ErrPostalCodeRequired = errors.New("postal code is required")
)

// CheckoutInfo is the customer information collected on checkout step one
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// Validate checks the fields in form order and reports the first missing one
func (c CheckoutInfo) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrLastNameRequired
	}
	if strings.TrimSpace(c.PostalCode) == "" {
		return ErrPostalCodeRequired
	}
	return nil
}

// Cart holds the products a shopper selected, in the order they were added
type Cart struct {
	SessionID string
	Info      *CheckoutInfo

	slugs []string
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// Add puts a product in the cart. Adding a product twice keeps one line.
func (c *Cart) Add(slug string) error {
	if _, err := FindProduct(slug); err != nil {
		return err
	}
	if c.Contains(slug) {
		return nil
	}
	c.slugs = append(c.slugs, slug)
	return nil
}

// Remove takes a product out of the cart and reports whether it was there
func (c *Cart) Remove(slug string) bool {
	for i, s := range c.slugs {
		if s == slug {
			c.slugs = append(c.slugs[:i], c.slugs[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether slug is in the cart
func (c *Cart) Contains(slug string) bool {
	for _, s := range c.slugs {
		if s == slug {
			return true
		}
	}
	return false
}

// Items returns the cart products in insertion order
func (c *Cart) Items() []Product {
	items := make([]Product, 0, len(c.slugs))
	for _, slug := range c.slugs {
		// slugs are validated on Add
		p, _ := FindProduct(slug)
		items = append(items, p)
	}
	return items
}

// Count returns the number of products in the cart
func (c *Cart) Count() int {
	return len(c.slugs)
}

// Subtotal returns the sum of item prices in cents
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, p := range c.Items() {
		total += p.Price
	}
	return total
}

// Clear empties the cart and forgets the checkout information
func (c *Cart) Clear() {
	c.slugs = nil
	c.Info = nil
}
