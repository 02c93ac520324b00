package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

type CategoryController struct {
	catalog *services.CatalogService
	puller  services.CategoryPuller
}

func NewCategoryController(db *gorm.DB, puller services.CategoryPuller) *CategoryController {
	return &CategoryController{
		catalog: services.NewCatalogService(db),
		puller:  puller,
	}
}

// List serves the category cache to the storefront. The storefront renders
// nothing without it, so a database failure degrades to an empty list with
// a 200 rather than breaking the page.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	rootOnly := r.URL.Query().Get("root") == "1"

	views, err := c.catalog.CachedCategories(rootOnly)
	if err != nil {
		logger.Error("categories: cache read failed", "error", err)
		response.Degraded(w, []services.CategoryView{})
		return
	}
	if views == nil {
		views = []services.CategoryView{}
	}
	response.Success(w, views)
}

// Sync replaces the category cache. The body either carries the records
// inline ({"action":"sync","categories":[...]}) or asks the server to pull
// them from the catalog API ({"action":"sync"}).
func (c *CategoryController) Sync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action     string         `json:"action"`
		Categories []woo.Category `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Action != "sync" {
		response.Error(w, http.StatusBadRequest, "unknown action")
		return
	}

	var (
		count int
		err   error
	)
	if len(body.Categories) > 0 {
		count, err = c.catalog.SyncCategories(body.Categories)
	} else {
		count, err = c.catalog.PullCategories(c.puller)
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, map[string]interface{}{
		"success": true,
		"synced":  count,
	})
}
