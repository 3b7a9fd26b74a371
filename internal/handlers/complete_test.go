package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/swaglabs/storefront/internal/models"
)

func TestCompleteHandler_ServeHTTP(t *testing.T) {
	deps := newTestDeps()
	order, err := deps.orders.PlaceOrder(
		models.CheckoutInfo{FirstName: "Jane", LastName: "Doe", PostalCode: "12345"},
		[]models.Product{models.Catalog[0]},
	)
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	tests := []struct {
		name              string
		method            string
		target            string
		expectedStatus    int
		expectedReference string
	}{
		{
			name:           "without reference",
			method:         http.MethodGet,
			target:         "/checkout-complete.html",
			expectedStatus: http.StatusOK,
		},
		{
			name:              "with reference",
			method:            http.MethodGet,
			target:            "/checkout-complete.html?reference=" + order.Reference,
			expectedStatus:    http.StatusOK,
			expectedReference: order.Reference,
		},
		{
			name:           "unknown reference still renders",
			method:         http.MethodGet,
			target:         "/checkout-complete.html?reference=ORDER-NOPE",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			target:         "/checkout-complete.html",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewCompleteHandler(templatesDir, deps.orders)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, deps.request(tt.method, tt.target, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			doc := parseBody(t, w)
			if got := strings.TrimSpace(doc.Find("[class='title']").Text()); got != "Checkout: Complete!" {
				t.Errorf("expected title %q, got %q", "Checkout: Complete!", got)
			}
			if got := strings.TrimSpace(doc.Find("[class='complete-header']").Text()); got != "Thank you for your order!" {
				t.Errorf("expected header %q, got %q", "Thank you for your order!", got)
			}
			if doc.Find("#back-to-products").Length() != 1 {
				t.Error("expected a back home button")
			}

			got := strings.TrimSpace(doc.Find(".order-reference").Text())
			if got != tt.expectedReference {
				t.Errorf("expected reference %q, got %q", tt.expectedReference, got)
			}
		})
	}
}

func TestRootHandler(t *testing.T) {
	tests := []struct {
		path             string
		expectedStatus   int
		expectedLocation string
	}{
		{path: "/", expectedStatus: http.StatusFound, expectedLocation: "/inventory.html"},
		{path: "/missing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			RootHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.expectedLocation {
				t.Errorf("expected location %q, got %q", tt.expectedLocation, got)
			}
		})
	}
}
