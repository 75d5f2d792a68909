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

const adminsCollection = "admins"

// AdminRepository reads and writes admin accounts.
type AdminRepository struct{}

func NewAdminRepository() *AdminRepository { return &AdminRepository{} }

func (r *AdminRepository) col() *mongo.Collection { return database.C(adminsCollection) }

// FindByUsername returns the admin with the given username.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	defer metrics.ObserveStoreOp(adminsCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var admin models.Admin
	err := r.col().FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		return nil, mapErr(err, "admin")
	}
	return &admin, nil
}

// FindByID returns the admin with the given id.
func (r *AdminRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	defer metrics.ObserveStoreOp(adminsCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var admin models.Admin
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		return nil, mapErr(err, "admin")
	}
	return &admin, nil
}

// All returns every admin account.
func (r *AdminRepository) All(ctx context.Context) ([]models.Admin, error) {
	defer metrics.ObserveStoreOp(adminsCollection, "find", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err, "admin")
	}
	admins := []models.Admin{}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, mapErr(err, "admin")
	}
	return admins, nil
}

// Create inserts a new admin. The unique index on username turns duplicates
// into a Conflict error.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	defer metrics.ObserveStoreOp(adminsCollection, "insertOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().InsertOne(ctx, admin)
	if err != nil {
		return mapErr(err, "admin")
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the mutable fields of an admin.
func (r *AdminRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	defer metrics.ObserveStoreOp(adminsCollection, "updateOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var admin models.Admin
	err := r.col().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(&admin)
	if err != nil {
		return nil, mapErr(err, "admin")
	}
	return &admin, nil
}

// Delete removes an admin account.
func (r *AdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp(adminsCollection, "deleteOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err, "admin")
	}
	if res.DeletedCount == 0 {
		return mapErr(mongo.ErrNoDocuments, "admin")
	}
	return nil
}
