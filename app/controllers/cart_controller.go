package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

// CartController persists authenticated users' carts. Adding an already
// present (product, variation) pair replaces its quantity and options.
type CartController struct {
	repo *repositories.CartRepository
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{repo: repositories.NewCartRepository(db)}
}

func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.ForUser(middleware.UserID(r.Context()))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	response.Success(w, items)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID   uint   `json:"product_id"`
		VariationID int64  `json:"variation_id"`
		Quantity    int    `json:"quantity"`
		Options     string `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ProductID == 0 {
		response.Error(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	item := models.CartItem{
		UserID:      middleware.UserID(r.Context()),
		ProductID:   body.ProductID,
		VariationID: body.VariationID,
		Quantity:    body.Quantity,
		Options:     body.Options,
	}
	if err := c.repo.Upsert(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, item)
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	var body struct {
		Quantity *int    `json:"quantity"`
		Options  *string `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]interface{}{}
	if body.Quantity != nil {
		if *body.Quantity <= 0 {
			response.Error(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
		fields["quantity"] = *body.Quantity
	}
	if body.Options != nil {
		fields["options"] = *body.Options
	}
	if len(fields) == 0 {
		response.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	err := c.repo.UpdateFields(id, middleware.UserID(r.Context()), fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{"success": true})
}

func (c *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	err := c.repo.Delete(id, middleware.UserID(r.Context()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{"success": true})
}
