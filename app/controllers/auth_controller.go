package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/middleware"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"gorm.io/gorm"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{service: services.NewAuthService(db)}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.Password == "" {
		response.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := c.service.Login(body.Email, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, session)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || len(body.Password) < 8 {
		response.Error(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	session, err := c.service.Register(body.Name, body.Email, body.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Error(w, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, session)
}

// Me echoes the authenticated user's claims, mainly for the frontend to
// check token validity.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, map[string]interface{}{
		"user_id": claims.UserID,
		"role":    claims.Role,
	})
}
