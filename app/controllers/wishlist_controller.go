package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

// sessionHeader carries the anonymous wishlist owner id.
const sessionHeader = "X-Session-ID"

// WishlistController serves wishlists for both authenticated users and
// anonymous sessions. An anonymous caller without a session id gets one
// minted and echoed back so the frontend can persist it.
type WishlistController struct {
	repo *repositories.WishlistRepository
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{repo: repositories.NewWishlistRepository(db)}
}

// owner resolves the caller to exactly one of user id or session id. The
// user id wins when both are present.
func owner(r *http.Request) (userID uint, sessionID string) {
	if id := middleware.UserID(r.Context()); id > 0 {
		return id, ""
	}
	return 0, r.Header.Get(sessionHeader)
}

func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := owner(r)
	if userID == 0 && sessionID == "" {
		sessionID = uuid.NewString()
		w.Header().Set(sessionHeader, sessionID)
		response.Success(w, []models.WishlistItem{})
		return
	}

	items, err := c.repo.ForOwner(userID, sessionID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	response.Success(w, items)
}

func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ProductID == 0 {
		response.Error(w, http.StatusBadRequest, "product_id is required")
		return
	}

	userID, sessionID := owner(r)
	if userID == 0 && sessionID == "" {
		sessionID = uuid.NewString()
		w.Header().Set(sessionHeader, sessionID)
	}

	item := models.WishlistItem{
		UserID:    userID,
		SessionID: sessionID,
		ProductID: body.ProductID,
	}
	if err := c.repo.Add(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, item)
}

func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	userID, sessionID := owner(r)
	if userID == 0 && sessionID == "" {
		response.Error(w, http.StatusBadRequest, "no wishlist owner")
		return
	}

	if err := c.repo.Remove(userID, sessionID, id); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{"success": true})
}

// Migrate moves an anonymous session's wishlist to the freshly logged-in
// user. Requires both a valid token and the old session id.
func (c *WishlistController) Migrate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == 0 {
		response.Unauthorized(w)
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.SessionID == "" {
		body.SessionID = r.Header.Get(sessionHeader)
	}
	if body.SessionID == "" {
		response.Error(w, http.StatusBadRequest, "session_id is required")
		return
	}

	moved, err := c.repo.Migrate(body.SessionID, userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"success":  true,
		"migrated": moved,
	})
}
