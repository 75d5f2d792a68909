package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/cache"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = 5 * time.Minute
)

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductService owns the catalog. The full product list is cached; every
// mutation invalidates it.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name     string                      `json:"name" validate:"required"`
	Category string                      `json:"category" validate:"required"`
	Image    string                      `json:"image" validate:"required"`
	Price    float64                     `json:"price" validate:"gte=0"`
	Branches map[string][]models.Variant `json:"branches"`
}

// List returns the full catalog, served from cache when warm.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(productListCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(productListCacheKey, products, productListCacheTTL)
	return products, nil
}

// Get returns a single product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid product id %q", id)
	}
	return s.products.FindByID(ctx, oid)
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Price < 0 {
		return nil, apperr.New(apperr.InvalidInput, "price must not be negative")
	}
	p := &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Image:    in.Image,
		Price:    in.Price,
		Branches: in.Branches,
	}
	if p.Branches == nil {
		p.Branches = map[string][]models.Variant{}
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	_ = cache.Del(productListCacheKey)
	return p, nil
}

// Update replaces the writable fields of a product.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid product id %q", id)
	}
	if in.Price < 0 {
		return nil, apperr.New(apperr.InvalidInput, "price must not be negative")
	}
	set := bson.M{
		"name":     in.Name,
		"category": in.Category,
		"image":    in.Image,
		"price":    in.Price,
	}
	if in.Branches != nil {
		set["branches"] = in.Branches
	}
	p, err := s.products.Update(ctx, oid, set)
	if err != nil {
		return nil, err
	}
	_ = cache.Del(productListCacheKey)
	return p, nil
}

// Delete removes a product from the catalog. Existing order items keep their
// reference; order listings simply stop enriching it.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid product id %q", id)
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}
	_ = cache.Del(productListCacheKey)
	return nil
}
