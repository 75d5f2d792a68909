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

const productsCollection = "products"

// ProductRepository reads and writes catalog products.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository { return &ProductRepository{} }

func (r *ProductRepository) col() *mongo.Collection { return database.C(productsCollection) }

// All returns every product in the catalog.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveStoreOp(productsCollection, "find", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err, "product")
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, mapErr(err, "product")
	}
	return products, nil
}

// FindByID returns a single product.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveStoreOp(productsCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var p models.Product
	if err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapErr(err, "product")
	}
	return &p, nil
}

// FindByIDs returns the products whose ids appear in ids. Missing ids are
// simply absent from the result; callers decide how to handle the gaps.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	defer metrics.ObserveStoreOp(productsCollection, "find", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	byID := map[primitive.ObjectID]models.Product{}
	if len(ids) == 0 {
		return byID, nil
	}

	cur, err := r.col().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mapErr(err, "product")
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, mapErr(err, "product")
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveStoreOp(productsCollection, "insertOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().InsertOne(ctx, p)
	if err != nil {
		return mapErr(err, "product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the given fields and returns the updated product.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	defer metrics.ObserveStoreOp(productsCollection, "updateOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Product
	err := r.col().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(&p)
	if err != nil {
		return nil, mapErr(err, "product")
	}
	return &p, nil
}

// Delete removes a product from the catalog.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp(productsCollection, "deleteOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err, "product")
	}
	if res.DeletedCount == 0 {
		return mapErr(mongo.ErrNoDocuments, "product")
	}
	return nil
}

// ReplaceAll swaps the full catalog for the given set inside one call.
// Used by restore only; callers must hold the restore lock.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	defer metrics.ObserveStoreOp(productsCollection, "replaceAll", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	if _, err := r.col().DeleteMany(ctx, bson.M{}); err != nil {
		return mapErr(err, "product")
	}
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	if _, err := r.col().InsertMany(ctx, docs); err != nil {
		return mapErr(err, "product")
	}
	return nil
}
