package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/swaglabs/storefront/internal/models"
	"github.com/swaglabs/storefront/internal/services"
)

// PageData is passed to every storefront template
type PageData struct {
	Title     string
	CartCount int
	Products  []models.Product
	InCart    map[string]bool
	Cart      services.CartView
	Info      models.CheckoutInfo
	Error     string
	Order     *models.Order
}

// parsePage parses the shared layout together with one page template
func parsePage(templatesDir, name string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"price": models.FormatCents,
	}

	tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(
		filepath.Join(templatesDir, "layout.html"),
		filepath.Join(templatesDir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// render executes the layout with data
func render(w http.ResponseWriter, tmpl *template.Template, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logrus.WithError(err).Errorf("Error rendering %s", data.Title)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// localPath returns target when it is a path on this site, otherwise fallback
func localPath(target, fallback string) string {
	if len(target) > 0 && target[0] == '/' && (len(target) == 1 || (target[1] != '/' && target[1] != '\\')) {
		return target
	}
	return fallback
}
