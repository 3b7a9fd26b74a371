package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/services"
)

// CompleteHandler renders the order complete page
type CompleteHandler struct {
	template *template.Template
	orders   services.OrderService
}

// NewCompleteHandler creates a new complete handler
func NewCompleteHandler(templatesDir string, orders services.OrderService) (*CompleteHandler, error) {
	tmpl, err := parsePage(templatesDir, "checkout_complete.html")
	if err != nil {
		return nil, err
	}

	return &CompleteHandler{
		template: tmpl,
		orders:   orders,
	}, nil
}

// ServeHTTP handles the GET /checkout-complete.html request
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := PageData{Title: "Checkout: Complete!"}

	// The reference is informational; an unknown one still shows the page.
	if reference := r.URL.Query().Get("reference"); reference != "" {
		order, err := h.orders.GetOrderByReference(reference)
		if err != nil {
			logrus.WithError(err).Warnf("Complete page requested for unknown order %s", reference)
		} else {
			data.Order = order
		}
	}

	render(w, h.template, data)
}

// RootHandler redirects the site root to the inventory
func RootHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/inventory.html", http.StatusFound)
	})
}
