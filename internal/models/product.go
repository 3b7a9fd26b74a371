package models

import (
	"errors"
	"fmt"
)

// ErrUnknownProduct is returned when a slug does not match a catalog product
var ErrUnknownProduct = errors.New("unknown product")

// Product represents a catalog item
type Product struct {
	Slug        string
	Name        string
	Description string
	Price       int64 // cents
}

// FormattedPrice returns the price as shown on the storefront, e.g. "$29.99"
func (p Product) FormattedPrice() string {
	return FormatCents(p.Price)
}

// FormatCents formats an amount in cents as dollars
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// Catalog is the fixed product list sold by the storefront
var Catalog = []Product{
	{
		Slug:        "sauce-labs-backpack",
		Name:        "Sauce Labs Backpack",
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection.",
		Price:       2999,
	},
	{
		Slug:        "sauce-labs-bike-light",
		Name:        "Sauce Labs Bike Light",
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included.",
		Price:       999,
	},
	{
		Slug:        "sauce-labs-bolt-t-shirt",
		Name:        "Sauce Labs Bolt T-Shirt",
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt.",
		Price:       1599,
	},
	{
		Slug:        "sauce-labs-fleece-jacket",
		Name:        "Sauce Labs Fleece Jacket",
		Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office.",
		Price:       4999,
	},
	{
		Slug:        "sauce-labs-onesie",
		Name:        "Sauce Labs Onesie",
		Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel.",
		Price:       799,
	},
	{
		Slug:        "test.allthethings()-t-shirt-(red)",
		Name:        "Test.allTheThings() T-Shirt (Red)",
		Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton.",
		Price:       1599,
	},
}

// FindProduct looks up a catalog product by slug
func FindProduct(slug string) (Product, error) {
	for _, p := range Catalog {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, slug)
}
