package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/models"
	"github.com/swaglabs/storefront/internal/services"
)

// CartHandler renders the cart
type CartHandler struct {
	template *template.Template
	carts    *services.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(templatesDir string, carts *services.CartService) (*CartHandler, error) {
	tmpl, err := parsePage(templatesDir, "cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		carts:    carts,
	}, nil
}

// ServeHTTP handles the GET /cart.html request
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cart := h.carts.View(sessionID(w, r))
	render(w, h.template, PageData{
		Title:     "Your Cart",
		CartCount: cart.Count(),
		Cart:      cart,
	})
}

// CartAction is a mutation of the cart
type CartAction int

// Cart actions
const (
	CartAdd CartAction = iota
	CartRemove
)

// CartActionHandler adds or removes a product and redirects back
type CartActionHandler struct {
	carts  *services.CartService
	action CartAction
}

// NewCartActionHandler creates a handler for POST /cart/add or /cart/remove
func NewCartActionHandler(carts *services.CartService, action CartAction) *CartActionHandler {
	return &CartActionHandler{
		carts:  carts,
		action: action,
	}
}

// ServeHTTP handles the cart mutation request
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	session := sessionID(w, r)
	slug := r.PostForm.Get("slug")

	switch h.action {
	case CartAdd:
		if err := h.carts.Add(session, slug); err != nil {
			if errors.Is(err, models.ErrUnknownProduct) {
				http.Error(w, "Unknown product", http.StatusBadRequest)
				return
			}
			logrus.WithError(err).Error("Error adding product to cart")
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		logrus.WithFields(logrus.Fields{"session": session, "product": slug}).Debug("Added to cart")
		http.Redirect(w, r, localPath(r.PostForm.Get("return"), "/inventory.html"), http.StatusSeeOther)
	case CartRemove:
		h.carts.Remove(session, slug)
		logrus.WithFields(logrus.Fields{"session": session, "product": slug}).Debug("Removed from cart")
		http.Redirect(w, r, localPath(r.PostForm.Get("return"), "/cart.html"), http.StatusSeeOther)
	}
}
