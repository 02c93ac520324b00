package woo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
)

func TestListProductsSendsAuthAndPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set(woo.TotalHeader, "142")
		json.NewEncoder(w).Encode([]woo.Product{ //nolint:errcheck
			{ID: 101, Name: "Robe", Price: "49.90"},
			{ID: 102, Name: "Jupe", Price: "24.50"},
		})
	}))
	defer srv.Close()

	client := woo.New(srv.URL, "ck_test", "cs_test")
	products, total, err := client.ListProducts(2, 100)
	require.NoError(t, err)
	assert.Equal(t, 142, total)
	require.Len(t, products, 2)
	assert.Equal(t, int64(101), products[0].ID)
	assert.Equal(t, "49.90", products[0].Price)
}

func TestListCategoriesReadsTotalHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Header().Set(woo.TotalHeader, "3")
		json.NewEncoder(w).Encode([]woo.Category{ //nolint:errcheck
			{ID: 10, Name: "Robes", Slug: "robes"},
		})
	}))
	defer srv.Close()

	client := woo.New(srv.URL, "k", "s")
	cats, total, err := client.ListCategories(1, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, cats, 1)
	assert.Equal(t, "robes", cats[0].Slug)
}

func TestListProductsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := woo.New(srv.URL, "bad", "creds")
	_, _, err := client.ListProducts(1, 100)
	assert.Error(t, err)
}

func TestCreateOrderPostsLineItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var req woo.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.LineItems, 1)
		assert.Equal(t, int64(100), req.LineItems[0].ProductID)

		json.NewEncoder(w).Encode(woo.Order{ID: 9001, Status: "processing"}) //nolint:errcheck
	}))
	defer srv.Close()

	client := woo.New(srv.URL, "k", "s")
	order, err := client.CreateOrder(woo.OrderRequest{
		LineItems: []woo.OrderLineItem{{ProductID: 100, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9001), order.ID)
}

func TestUpdateProductPutsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/101", r.URL.Path)

		var fields map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "39.90", fields["regular_price"])

		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := woo.New(srv.URL, "k", "s")
	err := client.UpdateProduct(101, map[string]interface{}{"regular_price": "39.90"})
	assert.NoError(t, err)
}
