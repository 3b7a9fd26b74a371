package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/swaglabs/storefront/internal/models"
	"github.com/swaglabs/storefront/internal/services"
)

// CheckoutInfoHandler handles checkout step one, the customer information form
type CheckoutInfoHandler struct {
	template *template.Template
	carts    *services.CartService
}

// NewCheckoutInfoHandler creates a new checkout information handler
func NewCheckoutInfoHandler(templatesDir string, carts *services.CartService) (*CheckoutInfoHandler, error) {
	tmpl, err := parsePage(templatesDir, "checkout_info.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutInfoHandler{
		template: tmpl,
		carts:    carts,
	}, nil
}

// ServeHTTP renders the form on GET and validates it on POST
func (h *CheckoutInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)
	cart := h.carts.View(session)

	data := PageData{
		Title:     "Checkout: Your Information",
		CartCount: cart.Count(),
	}
	if cart.Info != nil {
		data.Info = *cart.Info
	}

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, data)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		info := models.CheckoutInfo{
			FirstName:  r.PostForm.Get("firstName"),
			LastName:   r.PostForm.Get("lastName"),
			PostalCode: r.PostForm.Get("postalCode"),
		}
		if err := info.Validate(); err != nil {
			data.Info = info
			data.Error = validationMessage(err)
			render(w, h.template, data)
			return
		}

		h.carts.SetCheckoutInfo(session, info)
		http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// validationMessage returns the banner text shown for a checkout validation error
func validationMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrFirstNameRequired):
		return "Error: First Name is required"
	case errors.Is(err, models.ErrLastNameRequired):
		return "Error: Last Name is required"
	case errors.Is(err, models.ErrPostalCodeRequired):
		return "Error: Postal Code is required"
	default:
		return "Error: " + err.Error()
	}
}
