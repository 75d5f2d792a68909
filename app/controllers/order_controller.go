package controllers

import (
	"net/http"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/middleware"
)

// OrderController handles order listing, creation, status updates, and
// backup/restore of the order store.
type OrderController struct {
	orders  *services.OrderService
	backups *services.BackupService
}

func NewOrderController(orders *services.OrderService, backups *services.BackupService) *OrderController {
	return &OrderController{orders: orders, backups: backups}
}

// List returns the orders visible to the authenticated caller.
func (oc *OrderController) List(c *ctx.Context) {
	claims, ok := middleware.ClaimsFromCtx(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	orders, err := oc.orders.List(c.Context(), claims)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// Create accepts a customer order.
func (oc *OrderController) Create(c *ctx.Context) {
	var in services.OrderInput
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.orders.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves the order with the given document id to a new status.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	var req statusRequest
	if !c.BindJSON(&req) {
		return
	}

	order, err := oc.orders.UpdateStatusByID(c.Context(), c.Param("id"), models.Status(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// UpdateStatusByNumber moves the order with the given order number to a new
// status.
func (oc *OrderController) UpdateStatusByNumber(c *ctx.Context) {
	var req statusRequest
	if !c.BindJSON(&req) {
		return
	}

	order, err := oc.orders.UpdateStatusByNumber(c.Context(), c.Param("orderNumber"), models.Status(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// Backup streams the full order set as a downloadable JSON document.
func (oc *OrderController) Backup(c *ctx.Context) {
	data, err := oc.backups.BackupOrders(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("Content-Disposition", `attachment; filename="orders-backup.json"`)
	c.Status(http.StatusOK)
	_, _ = c.W.Write(data)
}

// Restore replaces the order set with an uploaded backup document.
// Destructive, so the caller must pass confirm=true explicitly.
func (oc *OrderController) Restore(c *ctx.Context) {
	if c.Query("confirm") != "true" {
		fail(c, apperr.New(apperr.InvalidInput, "restore is destructive; pass confirm=true to proceed"))
		return
	}

	file, _, err := c.FormFile("backup")
	if err != nil {
		fail(c, apperr.New(apperr.InvalidInput, "missing backup file"))
		return
	}
	defer file.Close()

	n, err := oc.backups.RestoreOrders(c.Context(), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]int{"restored": n})
}
