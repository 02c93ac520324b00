package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webproformation/LaboutiqueOK-sub001/pkg/router"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/api/products", "products.list", ok)
	r.Get("/api/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	if !found {
		t.Fatal("expected route to be registered")
	}
	if path != "/api/products/{id}" {
		t.Errorf("unexpected path: %s", path)
	}

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/products/42" {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing params")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("group"))
	api.Get("/ping", "ping", ok, mw("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "group" || order[1] != "route" {
		t.Errorf("middleware order: %v", order)
	}
}

func TestNestedGroupJoinsPaths(t *testing.T) {
	r := router.New()
	r.Group("/api").Group("/admin").Get("/products", "admin.products", ok)

	path, found := r.Path("admin.products")
	if !found || path != "/api/admin/products" {
		t.Errorf("unexpected path: %q found=%v", path, found)
	}
}
