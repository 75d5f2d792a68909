package controllers

import (
	"net/http"

	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/ctx"
)

// ProductController handles the catalog CRUD surface plus backup/restore.
type ProductController struct {
	products *services.ProductService
	backups  *services.BackupService
}

func NewProductController(products *services.ProductService, backups *services.BackupService) *ProductController {
	return &ProductController{products: products, backups: backups}
}

// List returns the full catalog.
func (pc *ProductController) List(c *ctx.Context) {
	products, err := pc.products.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// Show returns a single product.
func (pc *ProductController) Show(c *ctx.Context) {
	p, err := pc.products.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

// Create adds a product to the catalog.
func (pc *ProductController) Create(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	p, err := pc.products.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(p)
}

// Update replaces a product's fields.
func (pc *ProductController) Update(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}

	p, err := pc.products.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(p)
}

// Delete removes a product.
func (pc *ProductController) Delete(c *ctx.Context) {
	if err := pc.products.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"deleted": c.Param("id")})
}

// Backup streams the full catalog as a downloadable JSON document.
func (pc *ProductController) Backup(c *ctx.Context) {
	data, err := pc.backups.BackupProducts(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("Content-Disposition", `attachment; filename="products-backup.json"`)
	c.Status(http.StatusOK)
	_, _ = c.W.Write(data)
}

// Restore replaces the catalog with an uploaded backup document.
func (pc *ProductController) Restore(c *ctx.Context) {
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

	n, err := pc.backups.RestoreProducts(c.Context(), file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]int{"restored": n})
}
