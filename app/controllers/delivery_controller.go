package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

type DeliveryController struct {
	service *services.DeliveryService
}

func NewDeliveryController(db *gorm.DB, client services.OrderCreator) *DeliveryController {
	return &DeliveryController{service: services.NewDeliveryService(db, client)}
}

func (c *DeliveryController) List(w http.ResponseWriter, r *http.Request) {
	batches, err := c.service.List(middleware.UserID(r.Context()))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if batches == nil {
		batches = []models.DeliveryBatch{}
	}
	response.Success(w, batches)
}

func (c *DeliveryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid batch id")
		return
	}

	batch, err := c.service.Get(id, middleware.UserID(r.Context()))
	if errors.Is(err, services.ErrBatchNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, batch)
}

func (c *DeliveryController) Create(w http.ResponseWriter, r *http.Request) {
	var batch models.DeliveryBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	batch.UserID = middleware.UserID(r.Context())

	if err := c.service.Create(&batch); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, batch)
}

// Validate turns a pending batch into a catalog order. Precondition
// failures map to 409; the batch stays pending on any failure.
func (c *DeliveryController) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid batch id")
		return
	}

	batch, err := c.service.Validate(id, middleware.UserID(r.Context()))
	switch {
	case errors.Is(err, services.ErrBatchNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrBatchNotPending),
		errors.Is(err, services.ErrBatchEmpty),
		errors.Is(err, services.ErrBatchNoAddress):
		response.Error(w, http.StatusConflict, err.Error())
	case err != nil:
		response.Error(w, http.StatusInternalServerError, err.Error())
	default:
		response.Success(w, map[string]interface{}{
			"success": true,
			"batch":   batch,
		})
	}
}
