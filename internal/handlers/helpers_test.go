package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/swaglabs/storefront/internal/repository"
	"github.com/swaglabs/storefront/internal/services"
)

const templatesDir = "../../templates"

type testDeps struct {
	carts   *services.CartService
	repo    *repository.MemoryOrderRepository
	orders  services.OrderService
	session string
}

func newTestDeps() *testDeps {
	repo := repository.NewMemoryOrderRepository()
	return &testDeps{
		carts:   services.NewCartService(),
		repo:    repo,
		orders:  services.NewOrderService(repo),
		session: uuid.New().String(),
	}
}

// request builds a request carrying the deps' session cookie
func (d *testDeps) request(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: d.session})
	return req
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
	return doc
}

func texts(sel *goquery.Selection) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
