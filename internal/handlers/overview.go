package handlers

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/services"
)

// OverviewHandler handles checkout step two: the order overview and finish
type OverviewHandler struct {
	template *template.Template
	carts    *services.CartService
	orders   services.OrderService
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(templatesDir string, carts *services.CartService, orders services.OrderService) (*OverviewHandler, error) {
	tmpl, err := parsePage(templatesDir, "checkout_overview.html")
	if err != nil {
		return nil, err
	}

	return &OverviewHandler{
		template: tmpl,
		carts:    carts,
		orders:   orders,
	}, nil
}

// ServeHTTP renders the overview on GET and places the order on POST
func (h *OverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	cart := h.carts.View(session)

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The overview needs customer information from step one.
	if cart.Info == nil {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		render(w, h.template, PageData{
			Title:     "Checkout: Overview",
			CartCount: cart.Count(),
			Cart:      cart,
			Info:      *cart.Info,
		})
		return
	}

	order, err := h.orders.PlaceOrder(*cart.Info, cart.Items)
	if err != nil {
		logrus.WithError(err).Error("Error placing order")
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}
	h.carts.Clear(session)

	http.Redirect(w, r, "/checkout-complete.html?reference="+url.QueryEscape(order.Reference), http.StatusSeeOther)
}
