package controllers

import (
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/middleware"
)

// AdminController handles admin account management. Routes mounting it sit
// behind the owner role gate.
type AdminController struct {
	admins *services.AdminService
}

func NewAdminController(admins *services.AdminService) *AdminController {
	return &AdminController{admins: admins}
}

// List returns every admin account.
func (ac *AdminController) List(c *ctx.Context) {
	admins, err := ac.admins.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(admins)
}

// Create adds a new admin account.
func (ac *AdminController) Create(c *ctx.Context) {
	var in services.AdminInput
	if !c.BindJSON(&in) {
		return
	}

	admin, err := ac.admins.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(admin)
}

// Update changes an admin's name, password, or branch.
func (ac *AdminController) Update(c *ctx.Context) {
	var in services.AdminUpdateInput
	if !c.BindJSON(&in) {
		return
	}

	admin, err := ac.admins.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(admin)
}

// Delete removes an admin account.
func (ac *AdminController) Delete(c *ctx.Context) {
	claims, _ := middleware.ClaimsFromCtx(c.Context())
	if err := ac.admins.Delete(c.Context(), claims, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"deleted": c.Param("id")})
}
