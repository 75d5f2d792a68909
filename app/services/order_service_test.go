package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
)

type fakeOrderStore struct {
	orders     []models.Order
	lastFilter bson.M
	countToday int64
}

func (f *fakeOrderStore) Find(_ context.Context, filter bson.M) ([]models.Order, error) {
	f.lastFilter = filter
	if branch, ok := filter["branch"]; ok {
		var out []models.Order
		for _, o := range f.orders {
			if o.Branch == branch {
				out = append(out, o)
			}
		}
		return out, nil
	}
	return f.orders, nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *fakeOrderStore) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderNumber == number {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *fakeOrderStore) Create(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, filter bson.M, status models.Status) (*models.Order, error) {
	id := filter["_id"].(primitive.ObjectID)
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *fakeOrderStore) CountToday(context.Context) (int64, error) {
	return f.countToday, nil
}

type fakeProductFinder struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeProductFinder) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func seedOrders(t *testing.T) (*fakeOrderStore, *fakeProductFinder, primitive.ObjectID) {
	t.Helper()
	productID := primitive.NewObjectID()
	products := &fakeProductFinder{products: map[primitive.ObjectID]models.Product{
		productID: {ID: productID, Name: "Mango Ice", Price: 12.5},
	}}
	orders := &fakeOrderStore{orders: []models.Order{
		{
			ID: primitive.NewObjectID(), OrderNumber: "ORD-20260831-0001",
			Branch: "main", Status: models.StatusReceived,
			Items: []models.OrderItem{{Product: productID, Variant: "Mango", Quantity: 2, Price: 12.5, Branch: "main"}},
		},
		{
			ID: primitive.NewObjectID(), OrderNumber: "ORD-20260831-0002",
			Branch: "second", Status: models.StatusPreparing,
			Items: []models.OrderItem{{Product: primitive.NewObjectID(), Variant: "Grape", Quantity: 1, Price: 9, Branch: "second"}},
		},
		{
			ID: primitive.NewObjectID(), OrderNumber: "ORD-20260831-0003",
			Branch: "main", Status: models.StatusReady,
			Items: []models.OrderItem{{Product: productID, Variant: "Mango", Quantity: 1, Price: 12.5, Branch: "main"}},
		},
	}}
	return orders, products, productID
}

func TestListOwnerSeesAllBranches(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	got, err := svc.List(context.Background(), &auth.Claims{Role: models.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, bson.M{}, orders.lastFilter)
}

func TestListBranchManagerScopedToOwnBranch(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	got, err := svc.List(context.Background(), &auth.Claims{Role: models.RoleBranchManager, Branch: "main"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, o := range got {
		assert.Equal(t, "main", o.Branch)
	}
}

func TestListUnknownRoleForbidden(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	_, err := svc.List(context.Background(), &auth.Claims{Role: "auditor"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestListEnrichesResolvableProductsOnly(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	got, err := svc.List(context.Background(), &auth.Claims{Role: models.RoleOwner})
	require.NoError(t, err)

	// First order's item resolves in the catalog.
	assert.Equal(t, "Mango Ice", got[0].Items[0].ProductName)
	assert.Equal(t, 12.5, got[0].Items[0].ProductPrice)

	// Second order references a deleted product; the item stays unenriched
	// and the list still comes back whole.
	assert.Empty(t, got[1].Items[0].ProductName)
	assert.Zero(t, got[1].Items[0].ProductPrice)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	_, err := svc.UpdateStatusByNumber(context.Background(), "ORD-20260831-0001", "Bogus")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))

	// Order must be untouched.
	o, err := orders.FindByNumber(context.Background(), "ORD-20260831-0001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, o.Status)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	// Order Received cannot jump straight to Picked Up.
	_, err := svc.UpdateStatusByNumber(context.Background(), "ORD-20260831-0001", models.StatusPickedUp)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestUpdateStatusByNumber(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	got, err := svc.UpdateStatusByNumber(context.Background(), "ORD-20260831-0001", models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
}

func TestUpdateStatusByID(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	got, err := svc.UpdateStatusByID(context.Background(), orders.orders[1].ID.Hex(), models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, got.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	_, err := svc.UpdateStatusByNumber(context.Background(), "ORD-19990101-9999", models.StatusPreparing)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCreateOrderComputesTotalAndStampsBranch(t *testing.T) {
	orders, products, productID := seedOrders(t)
	orders.orders = nil
	orders.countToday = 4
	svc := NewOrderService(orders, products)

	var in OrderInput
	in.Customer.Name = "Dana"
	in.Customer.Contact = "0912345678"
	in.Items = []OrderItemInput{
		{Product: productID.Hex(), Variant: "Mango", Quantity: 3, Branch: "second"},
	}

	got, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, got.Status)
	assert.Equal(t, "second", got.Branch)
	assert.Equal(t, 37.5, got.Total)
	assert.Contains(t, got.OrderNumber, "ORD-")
	assert.Contains(t, got.OrderNumber, "-0005")
	assert.Equal(t, 12.5, got.Items[0].Price, "price comes from the catalog, not the client")
}

func TestCreateOrderRejectsUnknownProduct(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	var in OrderInput
	in.Customer.Name = "Dana"
	in.Customer.Contact = "0912345678"
	in.Items = []OrderItemInput{
		{Product: primitive.NewObjectID().Hex(), Variant: "Mango", Quantity: 1, Branch: "main"},
	}

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	orders, products, _ := seedOrders(t)
	svc := NewOrderService(orders, products)

	var in OrderInput
	in.Customer.Name = "Dana"
	in.Customer.Contact = "0912345678"

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}
