package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
)

type stubCategoryPuller struct {
	items []woo.Category
}

func (s *stubCategoryPuller) ListCategories(page, perPage int) ([]woo.Category, int, error) {
	if page > 1 {
		return nil, len(s.items), nil
	}
	return s.items, len(s.items), nil
}

func TestCategoryListServesCache(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	_, err := svc.SyncCategories([]woo.Category{
		{ID: 10, Name: "Robes", Slug: "robes"},
		{ID: 11, Name: "Robes longues", Slug: "robes-longues", Parent: 10},
	})
	require.NoError(t, err)

	c := NewCategoryController(db, &stubCategoryPuller{})

	rec := httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/api/categories-cache", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, gjson.Get(rec.Body.String(), "@this").Array(), 2)

	// root=1 filters to top-level categories.
	rec = httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/api/categories-cache?root=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Len(t, gjson.Get(body, "@this").Array(), 1)
	assert.Equal(t, "robes", gjson.Get(body, "0.slug").String())
}

func TestCategoryListDegradesToEmptyOnDBFailure(t *testing.T) {
	// No tables: every read fails, and the storefront still gets a page.
	c := NewCategoryController(newEmptyTestDB(t), &stubCategoryPuller{})

	rec := httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/api/categories-cache", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCategorySyncWithInlinePayload(t *testing.T) {
	db := newTestDB(t)
	c := NewCategoryController(db, &stubCategoryPuller{})

	req := httptest.NewRequest(http.MethodPost, "/api/categories-cache",
		strings.NewReader(`{"action":"sync","categories":[{"id":10,"name":"Robes","slug":"robes","parent":0,"count":4}]}`))
	rec := httptest.NewRecorder()
	c.Sync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "synced").Int())
}

func TestCategorySyncPullsWhenPayloadOmitted(t *testing.T) {
	db := newTestDB(t)
	puller := &stubCategoryPuller{items: []woo.Category{
		{ID: 10, Name: "Robes", Slug: "robes"},
		{ID: 12, Name: "Accessoires", Slug: "accessoires"},
	}}
	c := NewCategoryController(db, puller)

	req := httptest.NewRequest(http.MethodPost, "/api/categories-cache", strings.NewReader(`{"action":"sync"}`))
	rec := httptest.NewRecorder()
	c.Sync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "synced").Int())
}

func TestCategorySyncRejectsUnknownAction(t *testing.T) {
	c := NewCategoryController(newTestDB(t), &stubCategoryPuller{})

	req := httptest.NewRequest(http.MethodPost, "/api/categories-cache", strings.NewReader(`{"action":"wipe"}`))
	rec := httptest.NewRecorder()
	c.Sync(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
