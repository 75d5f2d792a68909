// Package routes wires controllers to URL paths. This is the single place
// the full endpoint surface of the API can be read.
package routes

import (
	"net/http"
	"time"

	"github.com/escobarvape/backend/app/controllers"
	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/app/repositories"
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/database"
	"github.com/escobarvape/backend/pkg/metrics"
	"github.com/escobarvape/backend/pkg/middleware"
	"github.com/escobarvape/backend/pkg/rbac"
	"github.com/escobarvape/backend/pkg/router"
	"github.com/escobarvape/backend/pkg/storage"
)

// Register mounts every API route on r.
func Register(r *router.Router) {
	adminRepo := repositories.NewAdminRepository()
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	announcementRepo := repositories.NewAnnouncementRepository()
	sliderRepo := repositories.NewSliderImageRepository()

	authSvc := services.NewAuthService(adminRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo)
	productSvc := services.NewProductService(productRepo)
	contentSvc := services.NewContentService(announcementRepo, sliderRepo)
	adminSvc := services.NewAdminService(adminRepo)
	backupSvc := services.NewBackupService(productRepo, orderRepo)

	authCtl := controllers.NewAuthController(authSvc)
	orderCtl := controllers.NewOrderController(orderSvc, backupSvc)
	productCtl := controllers.NewProductController(productSvc, backupSvc)
	contentCtl := controllers.NewContentController(contentSvc)
	adminCtl := controllers.NewAdminController(adminSvc)
	uploadCtl := controllers.NewUploadController()

	api := r.Group("/api")

	// Brute-force protection on the only credential endpoint.
	api.Post("/auth/login", "auth.login", ctx.Wrap(authCtl.Login),
		middleware.RateLimit(10, time.Minute))

	// Customer-facing surface, no credentials required.
	api.Post("/orders", "orders.create", ctx.Wrap(orderCtl.Create))
	api.Get("/announcement", "announcement.show", ctx.Wrap(contentCtl.ShowAnnouncement))
	api.Get("/slider-images", "slider.index", ctx.Wrap(contentCtl.ListSliderImages))

	// Product CRUD has never required credentials; the storefront reads
	// and the dashboard writes through the same open surface.
	api.Get("/products", "products.index", ctx.Wrap(productCtl.List))
	api.Post("/products", "products.store", ctx.Wrap(productCtl.Create))
	api.Get("/products/backup", "products.backup", ctx.Wrap(productCtl.Backup))
	api.Post("/products/restore", "products.restore", ctx.Wrap(productCtl.Restore))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productCtl.Show))
	api.Put("/products/{id}", "products.update", ctx.Wrap(productCtl.Update))
	api.Delete("/products/{id}", "products.destroy", ctx.Wrap(productCtl.Delete))

	// Everything below requires a valid session token.
	authed := api.Group("", middleware.Auth)

	authed.Get("/orders", "orders.index", ctx.Wrap(orderCtl.List))
	authed.Put("/orders/{id}/status", "orders.status", ctx.Wrap(orderCtl.UpdateStatus))
	authed.Put("/orders/by-number/{orderNumber}/status", "orders.status.by-number",
		ctx.Wrap(orderCtl.UpdateStatusByNumber))
	authed.Get("/orders/backup", "orders.backup", ctx.Wrap(orderCtl.Backup))
	authed.Post("/orders/restore", "orders.restore", ctx.Wrap(orderCtl.Restore))

	authed.Put("/announcement", "announcement.update", ctx.Wrap(contentCtl.UpdateAnnouncement))
	authed.Post("/slider-images", "slider.store", ctx.Wrap(contentCtl.AddSliderImage))
	authed.Delete("/slider-images/{id}", "slider.destroy", ctx.Wrap(contentCtl.RemoveSliderImage))

	authed.Post("/upload", "upload", ctx.Wrap(uploadCtl.Upload))

	// Admin account management is owner-only.
	owners := authed.Group("/admins", rbac.HasRole(models.RoleOwner))
	owners.Get("", "admins.index", ctx.Wrap(adminCtl.List))
	owners.Post("", "admins.store", ctx.Wrap(adminCtl.Create))
	owners.Put("/{id}", "admins.update", ctx.Wrap(adminCtl.Update))
	owners.Delete("/{id}", "admins.destroy", ctx.Wrap(adminCtl.Delete))

	// Ops surface.
	r.Get("/healthz", "healthz", healthz)
	r.Mount("/metrics", metrics.Handler())
	if root := storage.LocalRoot(); root != "" {
		r.Mount("/storage/*", http.StripPrefix("/storage/", http.FileServer(http.Dir(root))))
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unreachable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
