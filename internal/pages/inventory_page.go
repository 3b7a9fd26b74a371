package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// InventoryPage is the product grid the journey starts from.
type InventoryPage struct {
	page playwright.Page
	log  logrus.FieldLogger

	Heading       playwright.Locator
	ProductTitles playwright.Locator
	CartLink      playwright.Locator
	CartBadge     playwright.Locator
}

// NewInventoryPage creates an InventoryPage bound to page.
func NewInventoryPage(page playwright.Page, logger logrus.FieldLogger) *InventoryPage {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &InventoryPage{
		page: page,
		log:  logger.WithField("page", "inventory"),
	}
	p.Heading = page.Locator(productsHeading)
	p.ProductTitles = page.Locator(productTitle)
	p.CartLink = page.Locator(cartLink)
	p.CartBadge = page.Locator(cartBadge)

	return p
}

// Open navigates to the inventory under baseURL.
func (p *InventoryPage) Open(baseURL string) error {
	url := strings.TrimRight(baseURL, "/") + inventoryPath
	if _, err := p.page.Goto(url); err != nil {
		p.log.Errorf("Unable to open the inventory at %s: %v", url, err)
		return fmt.Errorf("open inventory: %w", err)
	}
	return nil
}

// AddToCart presses the add-to-cart button of the product identified by slug,
// for example "sauce-labs-backpack".
func (p *InventoryPage) AddToCart(slug string) error {
	button := p.page.Locator(fmt.Sprintf(addToCartPattern, slug))
	if err := button.Click(); err != nil {
		p.log.Errorf("Unable to add %s to the cart: %v", slug, err)
		return fmt.Errorf("add %s to cart: %w", slug, err)
	}
	return nil
}

// OpenCart follows the cart link in the header and waits for the cart screen.
func (p *InventoryPage) OpenCart() error {
	if err := p.CartLink.Click(); err != nil {
		p.log.Errorf("Unable to open the cart: %v", err)
		return fmt.Errorf("open cart: %w", err)
	}
	if err := p.page.WaitForURL("**" + cartPath); err != nil {
		p.log.Errorf("Cart screen did not load: %v", err)
		return fmt.Errorf("wait for cart: %w", err)
	}
	return nil
}
