package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
	"github.com/escobarvape/backend/pkg/logger"
)

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	Find(ctx context.Context, filter bson.M) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, filter bson.M, status models.Status) (*models.Order, error)
	CountToday(ctx context.Context) (int64, error)
}

// ProductFinder resolves catalog products for order enrichment.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
}

// OrderService owns the order lifecycle: creation, role-scoped listing, and
// status transitions.
type OrderService struct {
	orders   OrderStore
	products ProductFinder
}

func NewOrderService(orders OrderStore, products ProductFinder) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// OrderInput is what the customer-facing flow submits. Prices and totals are
// recomputed server side; client-sent figures are ignored.
type OrderInput struct {
	Customer struct {
		Name    string `json:"name" validate:"required"`
		Contact string `json:"contact" validate:"required"`
	} `json:"customer"`
	Items []OrderItemInput `json:"items" validate:"required"`
}

type OrderItemInput struct {
	Product  string `json:"product" validate:"required"`
	Variant  string `json:"variant" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
	Branch   string `json:"branch" validate:"required"`
}

// List returns the orders the caller may see, newest first, with each item's
// product reference resolved to name and price. Dangling references are left
// unenriched rather than failing the whole list.
func (s *OrderService) List(ctx context.Context, claims *auth.Claims) ([]models.Order, error) {
	filter, err := OrderFilter(claims)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, orders)
	return orders, nil
}

func (s *OrderService) enrich(ctx context.Context, orders []models.Order) {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.Product]; !ok {
				seen[it.Product] = struct{}{}
				ids = append(ids, it.Product)
			}
		}
	}

	byID, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		// Enrichment is best effort: the bare order list is still useful.
		logger.WithCtx(ctx).Warn("order enrichment failed", "error", err)
		return
	}

	for i := range orders {
		for j := range orders[i].Items {
			if p, ok := byID[orders[i].Items[j].Product]; ok {
				orders[i].Items[j].ProductName = p.Name
				orders[i].Items[j].ProductPrice = p.Price
			}
		}
	}
}

// Create builds and persists a new order. All items must resolve in the
// catalog; the order is filed under the first item's branch.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	if in.Customer.Name == "" || in.Customer.Contact == "" {
		return nil, apperr.New(apperr.InvalidInput, "customer name and contact are required")
	}
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "order must contain at least one item")
	}

	ids := make([]primitive.ObjectID, 0, len(in.Items))
	for _, it := range in.Items {
		id, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			return nil, apperr.New(apperr.InvalidInput, "invalid product reference %q", it.Product)
		}
		ids = append(ids, id)
	}

	byID, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &models.Order{
		Customer:  models.Customer{Name: in.Customer.Name, Contact: in.Customer.Contact},
		Status:    models.StatusReceived,
		Branch:    in.Items[0].Branch,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for i, it := range in.Items {
		p, ok := byID[ids[i]]
		if !ok {
			return nil, apperr.New(apperr.InvalidInput, "product %s not found in catalog", it.Product)
		}
		if it.Quantity < 1 {
			return nil, apperr.New(apperr.InvalidInput, "quantity must be at least 1")
		}
		order.Items = append(order.Items, models.OrderItem{
			Product:  ids[i],
			Variant:  it.Variant,
			Quantity: it.Quantity,
			Price:    p.Price,
			Branch:   it.Branch,
		})
		order.Total += p.Price * float64(it.Quantity)
	}

	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = number

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	created := []models.Order{*order}
	s.enrich(ctx, created)
	return &created[0], nil
}

func (s *OrderService) nextOrderNumber(ctx context.Context) (string, error) {
	n, err := s.orders.CountToday(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", time.Now().UTC().Format("20060102"), n+1), nil
}

// UpdateStatusByID moves the order with the given document id to status.
func (s *OrderService) UpdateStatusByID(ctx context.Context, id string, status models.Status) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid order id %q", id)
	}
	current, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, current, status)
}

// UpdateStatusByNumber moves the order with the given order number to status.
func (s *OrderService) UpdateStatusByNumber(ctx context.Context, orderNumber string, status models.Status) (*models.Order, error) {
	current, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, current, status)
}

func (s *OrderService) transition(ctx context.Context, current *models.Order, next models.Status) (*models.Order, error) {
	if !next.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "invalid status %q", next)
	}
	if !current.Status.CanTransition(next) {
		return nil, apperr.New(apperr.InvalidInput,
			"cannot move order from %q to %q", current.Status, next)
	}
	return s.orders.UpdateStatus(ctx, bson.M{"_id": current.ID}, next)
}
