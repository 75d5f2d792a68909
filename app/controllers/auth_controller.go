package controllers

import (
	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/logger"
)

// AuthController handles login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *models.Admin `json:"user"`
}

// Login verifies credentials and returns a session token with the admin
// profile.
func (ac *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	token, admin, err := ac.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		logger.WithCtx(c.Context()).Warn("login rejected", "username", req.Username)
		fail(c, err)
		return
	}

	logger.WithCtx(c.Context()).Info("admin logged in",
		"username", admin.Username, "role", admin.Role)
	c.Success(loginResponse{Token: token, User: admin})
}
