package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

// AdminProductController is the admin CRUD surface over the product cache.
// Writes go to the local table first and are then mirrored to the catalog
// API best effort; a failed mirror comes back as a warning, not an error.
type AdminProductController struct {
	catalog  *services.CatalogService
	products *services.ProductService
	puller   services.ProductPuller
	attrs    services.AttributePuller
}

func NewAdminProductController(db *gorm.DB, writer services.CatalogWriter, puller services.ProductPuller, attrs services.AttributePuller) *AdminProductController {
	return &AdminProductController{
		catalog:  services.NewCatalogService(db),
		products: services.NewProductService(db, writer),
		puller:   puller,
		attrs:    attrs,
	}
}

// List returns every product with category names resolved. When ?page= is
// present the listing is paginated and wrapped with page metadata.
func (c *AdminProductController) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("page") != "" {
		c.listPaged(w, r)
		return
	}

	products, err := c.catalog.AdminProducts()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []services.AdminProduct{}
	}
	response.Success(w, products)
}

func (c *AdminProductController) listPaged(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, pagination, err := c.catalog.AdminProductsPaged(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []services.AdminProduct{}
	}
	response.Success(w, map[string]interface{}{
		"products":   products,
		"pagination": pagination,
	})
}

func (c *AdminProductController) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if product.Name == "" {
		response.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	result := c.products.Create(&product)
	if !result.OK() {
		response.Error(w, http.StatusInternalServerError, result.Local.Error())
		return
	}
	response.Created(w, dualWriteBody(product, result))
}

func (c *AdminProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(fields) == 0 {
		response.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	product, result := c.products.Update(id, fields)
	if !result.OK() {
		if errors.Is(result.Local, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, result.Local.Error())
		return
	}
	response.Success(w, dualWriteBody(product, result))
}

func (c *AdminProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	result := c.products.Deactivate(id)
	if !result.OK() {
		if errors.Is(result.Local, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, result.Local.Error())
		return
	}

	body := map[string]interface{}{"success": true}
	if warning := result.Warning(); warning != "" {
		body["warning"] = warning
	}
	response.Success(w, body)
}

// Sync pulls the whole product catalog from the external API into the cache.
func (c *AdminProductController) Sync(w http.ResponseWriter, r *http.Request) {
	count, err := c.catalog.PullProducts(c.puller)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"success": true,
		"synced":  count,
	})
}

// Attributes proxies the catalog API's attribute list for the product form.
func (c *AdminProductController) Attributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := c.attrs.ListAttributes()
	if err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, attrs)
}

func dualWriteBody(product models.Product, result services.DualWriteResult) map[string]interface{} {
	body := map[string]interface{}{
		"success": true,
		"product": product,
	}
	if warning := result.Warning(); warning != "" {
		body["warning"] = warning
	}
	return body
}

func idParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
