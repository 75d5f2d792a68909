package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/database"
	"github.com/escobarvape/backend/pkg/metrics"
)

const ordersCollection = "orders"

// OrderRepository reads and writes customer orders.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository { return &OrderRepository{} }

func (r *OrderRepository) col() *mongo.Collection { return database.C(ordersCollection) }

// Find returns the orders matching filter, newest first.
func (r *OrderRepository) Find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	defer metrics.ObserveStoreOp(ordersCollection, "find", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err, "order")
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, mapErr(err, "order")
	}
	return orders, nil
}

// FindByID returns a single order by document id.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	defer metrics.ObserveStoreOp(ordersCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var o models.Order
	if err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, mapErr(err, "order")
	}
	return &o, nil
}

// FindByNumber returns a single order by its human-readable order number.
func (r *OrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	defer metrics.ObserveStoreOp(ordersCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var o models.Order
	if err := r.col().FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&o); err != nil {
		return nil, mapErr(err, "order")
	}
	return &o, nil
}

// Create inserts a new order. The unique index on orderNumber turns
// duplicates into a Conflict error.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveStoreOp(ordersCollection, "insertOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().InsertOne(ctx, o)
	if err != nil {
		return mapErr(err, "order")
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateStatus sets the status of the order matching filter and returns the
// updated document.
func (r *OrderRepository) UpdateStatus(ctx context.Context, filter bson.M, status models.Status) (*models.Order, error) {
	defer metrics.ObserveStoreOp(ordersCollection, "updateOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	var o models.Order
	if err := r.col().FindOneAndUpdate(ctx, filter, update, after).Decode(&o); err != nil {
		return nil, mapErr(err, "order")
	}
	return &o, nil
}

// CountToday returns how many orders were created since midnight UTC.
// Used to build sequential order numbers.
func (r *OrderRepository) CountToday(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(ordersCollection, "count", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	n, err := r.col().CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": midnight}})
	if err != nil {
		return 0, mapErr(err, "order")
	}
	return n, nil
}

// ReplaceAll swaps the full order set for the given one inside one call.
// Used by restore only; callers must hold the restore lock.
func (r *OrderRepository) ReplaceAll(ctx context.Context, orders []models.Order) error {
	defer metrics.ObserveStoreOp(ordersCollection, "replaceAll", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	if _, err := r.col().DeleteMany(ctx, bson.M{}); err != nil {
		return mapErr(err, "order")
	}
	if len(orders) == 0 {
		return nil
	}
	docs := make([]interface{}, len(orders))
	for i := range orders {
		docs[i] = orders[i]
	}
	if _, err := r.col().InsertMany(ctx, docs); err != nil {
		return mapErr(err, "order")
	}
	return nil
}
