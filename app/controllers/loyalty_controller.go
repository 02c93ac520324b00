package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

type LoyaltyController struct {
	service *services.LoyaltyService
}

func NewLoyaltyController(db *gorm.DB) *LoyaltyController {
	return &LoyaltyController{service: services.NewLoyaltyService(db)}
}

// Points returns the caller's ledger together with the derived tier.
func (c *LoyaltyController) Points(w http.ResponseWriter, r *http.Request) {
	ledger, tier, err := c.service.Ledger(middleware.UserID(r.Context()))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"points": ledger,
		"tier":   tier,
	})
}

// Award appends a ledger row for the caller.
func (c *LoyaltyController) Award(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Points      int    `json:"points"`
		BonusType   string `json:"bonus_type"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Points == 0 {
		response.Error(w, http.StatusBadRequest, "points must be non-zero")
		return
	}

	err := c.service.Award(middleware.UserID(r.Context()), body.Points, body.BonusType, body.Description)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, map[string]interface{}{"success": true})
}

// DailyBonus claims the once-per-UTC-day bonus. A second claim on the same
// day is not an error at the HTTP level; the frontend shows the message.
func (c *LoyaltyController) DailyBonus(w http.ResponseWriter, r *http.Request) {
	points, err := c.service.DailyBonus(middleware.UserID(r.Context()))
	if errors.Is(err, services.ErrBonusAlreadyClaimed) {
		response.Success(w, map[string]interface{}{
			"success": false,
			"message": "daily bonus already claimed today",
		})
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"success": true,
		"points":  points,
	})
}

// Tier serves the loyalty widget. It always answers 200: on a database
// failure the caller gets the base tier instead of an error page.
func (c *LoyaltyController) Tier(w http.ResponseWriter, r *http.Request) {
	tier, err := c.service.Tier(middleware.UserID(r.Context()))
	if err != nil {
		logger.Error("loyalty: tier read failed", "error", err)
		response.Degraded(w, services.DefaultTier())
		return
	}
	response.Success(w, tier)
}
