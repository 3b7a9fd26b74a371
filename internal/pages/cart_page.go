// Package pages models storefront screens as page objects over playwright-go.
//
// A page object holds named locators scoped to one screen and exposes the user
// journeys tests care about. Locators are lazy: nothing touches the DOM until an
// action runs. A page object never owns or closes the playwright.Page it wraps,
// and its methods must not be called concurrently on the same page.
package pages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Completion decides whether PerformCheckout presses the final finish button.
type Completion string

// Completion values
const (
	CompleteYes Completion = "yes"
	CompleteNo  Completion = "no"
)

// ErrInvalidCompletion is returned for a Completion other than yes or no.
var ErrInvalidCompletion = errors.New(`completion must be "yes" or "no"`)

// CheckoutInput is the customer information typed into the checkout form.
// Empty fields are typed as empty strings.
type CheckoutInput struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// CartPage covers the cart, checkout information, overview and complete screens.
type CartPage struct {
	page playwright.Page
	log  logrus.FieldLogger

	CheckoutButton   playwright.Locator
	FirstNameInput   playwright.Locator
	LastNameInput    playwright.Locator
	PostalCodeInput  playwright.Locator
	ContinueButton   playwright.Locator
	FinishButton     playwright.Locator
	CompleteTitle    playwright.Locator
	ThankYouHeader   playwright.Locator
	BackHomeButton   playwright.Locator
	ProductTitles    playwright.Locator
	ErrorMessage     playwright.Locator
	RemoveButtons    playwright.Locator
	CartBadge        playwright.Locator
	ContinueShopping playwright.Locator
	ProductsHeading  playwright.Locator
	CancelButton     playwright.Locator
}

// NewCartPage creates a CartPage bound to page. A nil logger falls back to the
// logrus standard logger.
func NewCartPage(page playwright.Page, logger logrus.FieldLogger) *CartPage {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &CartPage{
		page: page,
		log:  logger.WithField("page", "cart"),
	}

	p.CheckoutButton = page.Locator(checkoutButton)
	p.FirstNameInput = page.Locator(firstNameInput)
	p.LastNameInput = page.Locator(lastNameInput)
	p.PostalCodeInput = page.Locator(postalCodeInput)
	p.ContinueButton = page.Locator(continueButton)
	p.FinishButton = page.Locator(finishButton)
	p.CompleteTitle = page.Locator(completeTitle)
	p.ThankYouHeader = page.Locator(thankYouHeader)
	p.BackHomeButton = page.Locator(backHomeButton)
	p.ProductTitles = page.Locator(productTitle)
	p.ErrorMessage = page.Locator(errorMessage)
	p.RemoveButtons = page.Locator(removeButton)
	p.CartBadge = page.Locator(cartBadge)
	p.ContinueShopping = page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: continueShopping,
	})
	p.ProductsHeading = page.Locator(productsHeading)
	p.CancelButton = page.Locator(cancelButton)

	return p
}

// PerformCheckout fills the checkout information form and presses continue.
// With CompleteYes it also presses finish on the overview screen.
//
// Any failed interaction is logged and returned; the checkout attempt must be
// treated as failed.
func (p *CartPage) PerformCheckout(flag Completion, in CheckoutInput) error {
	if flag != CompleteYes && flag != CompleteNo {
		return fmt.Errorf("%w: got %q", ErrInvalidCompletion, flag)
	}

	if err := p.checkout(flag, in); err != nil {
		p.log.Errorf("Unable to perform the full checkout: %v", err)
		return err
	}
	return nil
}

func (p *CartPage) checkout(flag Completion, in CheckoutInput) error {
	if err := p.FirstNameInput.Fill(in.FirstName); err != nil {
		return fmt.Errorf("fill first name: %w", err)
	}
	if err := p.LastNameInput.Fill(in.LastName); err != nil {
		return fmt.Errorf("fill last name: %w", err)
	}
	if err := p.PostalCodeInput.Fill(in.PostalCode); err != nil {
		return fmt.Errorf("fill postal code: %w", err)
	}
	if err := p.ContinueButton.Click(); err != nil {
		return fmt.Errorf("click continue: %w", err)
	}

	if flag == CompleteYes {
		if err := p.FinishButton.Click(); err != nil {
			return fmt.Errorf("click finish: %w", err)
		}
	}
	return nil
}

// CartProductsVerification returns the visible product titles in document
// order. It is best effort: on failure it logs and returns the titles read so
// far together with the error. No matches yields an empty slice.
func (p *CartPage) CartProductsVerification() ([]string, error) {
	titles := []string{}

	count, err := p.ProductTitles.Count()
	if err != nil {
		return titles, p.soft("verify the product titles", fmt.Errorf("count product titles: %w", err))
	}

	for i := 0; i < count; i++ {
		text, err := p.ProductTitles.Nth(i).InnerText()
		if err != nil {
			return titles, p.soft("verify the product titles", fmt.Errorf("read product title %d: %w", i, err))
		}
		titles = append(titles, text)
	}

	return titles, nil
}

// NavigateHomeFromCheckout presses "Back Home" on the complete screen. Failures
// are logged and returned.
func (p *CartPage) NavigateHomeFromCheckout() error {
	if err := p.BackHomeButton.Click(); err != nil {
		return p.soft("navigate home from checkout", err)
	}
	return nil
}

// StartCheckout presses the checkout button on the cart screen.
func (p *CartPage) StartCheckout() error {
	if err := p.CheckoutButton.Click(); err != nil {
		p.log.Errorf("Unable to start the checkout: %v", err)
		return err
	}
	return nil
}

// ContinueShoppingFromCart presses "Continue Shopping" on the cart screen.
func (p *CartPage) ContinueShoppingFromCart() error {
	if err := p.ContinueShopping.Click(); err != nil {
		return p.soft("continue shopping", err)
	}
	return nil
}

// CancelOverview presses cancel on the checkout overview screen.
func (p *CartPage) CancelOverview() error {
	if err := p.CancelButton.Click(); err != nil {
		return p.soft("cancel the checkout overview", err)
	}
	return nil
}

// ErrorText returns the validation banner text, or "" when no banner is shown.
func (p *CartPage) ErrorText() (string, error) {
	return p.optionalText(p.ErrorMessage, "read the error message")
}

// CartCount returns the number shown on the cart badge. A missing badge means
// an empty cart.
func (p *CartPage) CartCount() (int, error) {
	text, err := p.optionalText(p.CartBadge, "read the cart badge")
	if err != nil || text == "" {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, p.soft("read the cart badge", fmt.Errorf("parse cart badge %q: %w", text, err))
	}
	return n, nil
}

// RemoveAll presses every remove button on the page and returns how many
// products were removed.
func (p *CartPage) RemoveAll() (int, error) {
	count, err := p.RemoveButtons.Count()
	if err != nil {
		return 0, p.soft("remove products", fmt.Errorf("count remove buttons: %w", err))
	}

	removed := 0
	for removed < count {
		if err := p.RemoveButtons.First().Click(); err != nil {
			return removed, p.soft("remove products", fmt.Errorf("click remove: %w", err))
		}
		removed++
	}
	return removed, nil
}

// CompletionMessage returns the title and thank-you header of the complete
// screen.
func (p *CartPage) CompletionMessage() (string, string, error) {
	title, err := p.CompleteTitle.InnerText()
	if err != nil {
		return "", "", p.soft("read the completion title", err)
	}
	header, err := p.ThankYouHeader.InnerText()
	if err != nil {
		return title, "", p.soft("read the thank you header", err)
	}
	return title, header, nil
}

// ProductsHeadingText returns the screen heading, "Products" on the inventory.
func (p *CartPage) ProductsHeadingText() (string, error) {
	text, err := p.ProductsHeading.InnerText()
	if err != nil {
		return "", p.soft("read the products heading", err)
	}
	return text, nil
}

func (p *CartPage) optionalText(l playwright.Locator, action string) (string, error) {
	n, err := l.Count()
	if err != nil {
		return "", p.soft(action, err)
	}
	if n == 0 {
		return "", nil
	}

	text, err := l.First().InnerText()
	if err != nil {
		return "", p.soft(action, err)
	}
	return text, nil
}

// soft logs err and hands it back so best-effort callers can still inspect it.
func (p *CartPage) soft(action string, err error) error {
	p.log.Errorf("Unable to %s: %v", action, err)
	return err
}
