package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/middleware"
)

type stubOrderStore struct {
	orders []models.Order
}

func (f *stubOrderStore) Find(_ context.Context, filter bson.M) ([]models.Order, error) {
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

func (f *stubOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *stubOrderStore) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderNumber == number {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (f *stubOrderStore) Create(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *o)
	return nil
}

func (f *stubOrderStore) UpdateStatus(_ context.Context, filter bson.M, status models.Status) (*models.Order, error) {
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

func (f *stubOrderStore) CountToday(context.Context) (int64, error) { return 0, nil }

type stubProducts struct{}

func (stubProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	return map[primitive.ObjectID]models.Product{}, nil
}

func newOrderAPI(t *testing.T) (*chi.Mux, *stubOrderStore) {
	t.Helper()
	store := &stubOrderStore{orders: []models.Order{
		{ID: primitive.NewObjectID(), OrderNumber: "ORD-1001", Branch: "north", Status: models.StatusReceived},
		{ID: primitive.NewObjectID(), OrderNumber: "ORD-1002", Branch: "south", Status: models.StatusReceived},
		{ID: primitive.NewObjectID(), OrderNumber: "ORD-1003", Branch: "north", Status: models.StatusPreparing},
	}}

	oc := NewOrderController(services.NewOrderService(store, stubProducts{}), nil)
	mux := chi.NewRouter()
	mux.With(middleware.Auth).Get("/api/orders", ctx.Wrap(oc.List))
	mux.With(middleware.Auth).Put("/api/orders/by-number/{orderNumber}/status", ctx.Wrap(oc.UpdateStatusByNumber))
	return mux, store
}

type listEnvelope struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    []models.Order `json:"data"`
}

func get(t *testing.T, mux *chi.Mux, token string) (*httptest.ResponseRecorder, listEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	mux.ServeHTTP(rec, req)

	var body listEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestListOrdersOwnerSeesAll(t *testing.T) {
	mux, _ := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), models.RoleOwner, "")
	require.NoError(t, err)

	rec, body := get(t, mux, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body.Data, 3)
}

func TestListOrdersBranchManagerSeesOwnBranchOnly(t *testing.T) {
	mux, _ := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), models.RoleBranchManager, "north")
	require.NoError(t, err)

	rec, body := get(t, mux, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Data, 2)
	for _, o := range body.Data {
		assert.Equal(t, "north", o.Branch)
	}
}

func TestListOrdersNoToken(t *testing.T) {
	mux, _ := newOrderAPI(t)
	rec, _ := get(t, mux, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrdersUnknownRoleForbidden(t *testing.T) {
	mux, _ := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), "auditor", "")
	require.NoError(t, err)

	rec, _ := get(t, mux, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatusByNumberBogusStatusLeavesOrderUnchanged(t *testing.T) {
	mux, store := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), models.RoleOwner, "")
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"status": "Bogus"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/orders/by-number/ORD-1001/status", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	o, err := store.FindByNumber(context.Background(), "ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, o.Status)
}

func TestUpdateStatusByNumberHappyPath(t *testing.T) {
	mux, store := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), models.RoleOwner, "")
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"status": string(models.StatusPreparing)})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/orders/by-number/ORD-1001/status", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	o, err := store.FindByNumber(context.Background(), "ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, o.Status)
}

func TestUpdateStatusByNumberUnknownOrder(t *testing.T) {
	mux, _ := newOrderAPI(t)
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), models.RoleOwner, "")
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"status": string(models.StatusPreparing)})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/orders/by-number/ORD-9999/status", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
