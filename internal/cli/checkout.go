package cli

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/pages"
)

// URL patterns of the screens a journey waits for. The overview and complete
// screens share heading markup with the screen before them.
const (
	overviewURL  = "**/checkout-step-two.html"
	completeURL  = "**/checkout-complete.html**"
	inventoryURL = "**/inventory.html"
)

// ErrNoProducts is returned when a checkout journey names no products
var ErrNoProducts = errors.New("at least one product is required")

// CheckoutJourney describes one shopper run through the storefront
type CheckoutJourney struct {
	BaseURL    string
	Products   []string
	Customer   pages.CheckoutInput
	Completion pages.Completion
}

// JourneyResult is what the shopper saw along the way
type JourneyResult struct {
	CartTitles     []string
	OverviewTitles []string
	CompleteTitle  string
	ThankYou       string
	Heading        string
}

// RunCheckout drives page through the inventory, cart and checkout screens.
// With CompleteYes the order is finished and the shopper returns home; with
// CompleteNo the run stops on the overview.
func RunCheckout(page playwright.Page, journey CheckoutJourney, logger logrus.FieldLogger) (*JourneyResult, error) {
	if len(journey.Products) == 0 {
		return nil, ErrNoProducts
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	inventory := pages.NewInventoryPage(page, logger)
	cart := pages.NewCartPage(page, logger)
	result := &JourneyResult{}

	if err := inventory.Open(journey.BaseURL); err != nil {
		return result, err
	}
	for _, slug := range journey.Products {
		if err := inventory.AddToCart(slug); err != nil {
			return result, err
		}
	}
	if err := inventory.OpenCart(); err != nil {
		return result, err
	}

	titles, err := cart.CartProductsVerification()
	result.CartTitles = titles
	if err != nil {
		return result, fmt.Errorf("verify cart: %w", err)
	}
	logger.WithField("products", titles).Info("Cart verified")

	if err := cart.StartCheckout(); err != nil {
		return result, fmt.Errorf("start checkout: %w", err)
	}
	if err := cart.PerformCheckout(journey.Completion, journey.Customer); err != nil {
		return result, fmt.Errorf("checkout: %w", err)
	}

	if journey.Completion == pages.CompleteNo {
		if err := page.WaitForURL(overviewURL); err != nil {
			return result, fmt.Errorf("wait for overview: %w", err)
		}
		titles, err := cart.CartProductsVerification()
		result.OverviewTitles = titles
		if err != nil {
			return result, fmt.Errorf("verify overview: %w", err)
		}
		logger.WithField("products", titles).Info("Checkout stopped on the overview")
		return result, nil
	}

	if err := page.WaitForURL(completeURL); err != nil {
		return result, fmt.Errorf("wait for completion: %w", err)
	}
	if result.CompleteTitle, result.ThankYou, err = cart.CompletionMessage(); err != nil {
		return result, fmt.Errorf("read completion: %w", err)
	}
	if err := cart.NavigateHomeFromCheckout(); err != nil {
		return result, fmt.Errorf("navigate home: %w", err)
	}
	if err := page.WaitForURL(inventoryURL); err != nil {
		return result, fmt.Errorf("wait for inventory: %w", err)
	}
	if result.Heading, err = cart.ProductsHeadingText(); err != nil {
		return result, fmt.Errorf("read heading: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"title":    result.CompleteTitle,
		"thankyou": result.ThankYou,
	}).Info("Checkout completed")
	return result, nil
}
