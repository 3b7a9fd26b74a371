package handlers

import (
	"html/template"
	"net/http"

	"github.com/swaglabs/storefront/internal/models"
	"github.com/swaglabs/storefront/internal/services"
)

// InventoryHandler renders the product grid
type InventoryHandler struct {
	template *template.Template
	carts    *services.CartService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(templatesDir string, carts *services.CartService) (*InventoryHandler, error) {
	tmpl, err := parsePage(templatesDir, "inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template: tmpl,
		carts:    carts,
	}, nil
}

// ServeHTTP handles the GET /inventory.html request
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cart := h.carts.View(sessionID(w, r))
	inCart := make(map[string]bool, cart.Count())
	for _, p := range cart.Items {
		inCart[p.Slug] = true
	}

	render(w, h.template, PageData{
		Title:     "Products",
		CartCount: cart.Count(),
		Products:  models.Catalog,
		InCart:    inCart,
	})
}
