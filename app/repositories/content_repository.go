package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/database"
	"github.com/escobarvape/backend/pkg/metrics"
)

const (
	announcementsCollection = "announcements"
	sliderImagesCollection  = "sliderimages"
)

// AnnouncementRepository manages the announcement singleton.
type AnnouncementRepository struct{}

func NewAnnouncementRepository() *AnnouncementRepository { return &AnnouncementRepository{} }

func (r *AnnouncementRepository) col() *mongo.Collection {
	return database.C(announcementsCollection)
}

// Get returns the current announcement, or nil if none has ever been set.
func (r *AnnouncementRepository) Get(ctx context.Context) (*models.Announcement, error) {
	defer metrics.ObserveStoreOp(announcementsCollection, "findOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	var a models.Announcement
	err := r.col().FindOne(ctx, bson.M{}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err, "announcement")
	}
	return &a, nil
}

// Upsert replaces the singleton, creating it on first write.
func (r *AnnouncementRepository) Upsert(ctx context.Context, message string, enabled bool) (*models.Announcement, error) {
	defer metrics.ObserveStoreOp(announcementsCollection, "upsert", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"message":   message,
		"enabled":   enabled,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var a models.Announcement
	if err := r.col().FindOneAndUpdate(ctx, bson.M{}, update, opts).Decode(&a); err != nil {
		return nil, mapErr(err, "announcement")
	}
	return &a, nil
}

// SliderImageRepository manages the promotional image list.
type SliderImageRepository struct{}

func NewSliderImageRepository() *SliderImageRepository { return &SliderImageRepository{} }

func (r *SliderImageRepository) col() *mongo.Collection {
	return database.C(sliderImagesCollection)
}

// All returns every slider image.
func (r *SliderImageRepository) All(ctx context.Context) ([]models.SliderImage, error) {
	defer metrics.ObserveStoreOp(sliderImagesCollection, "find", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err, "slider image")
	}
	images := []models.SliderImage{}
	if err := cur.All(ctx, &images); err != nil {
		return nil, mapErr(err, "slider image")
	}
	return images, nil
}

// Create inserts a new slider image.
func (r *SliderImageRepository) Create(ctx context.Context, img *models.SliderImage) error {
	defer metrics.ObserveStoreOp(sliderImagesCollection, "insertOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().InsertOne(ctx, img)
	if err != nil {
		return mapErr(err, "slider image")
	}
	img.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete removes a slider image.
func (r *SliderImageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp(sliderImagesCollection, "deleteOne", time.Now())
	ctx, cancel := database.OpCtx(ctx)
	defer cancel()

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err, "slider image")
	}
	if res.DeletedCount == 0 {
		return mapErr(mongo.ErrNoDocuments, "slider image")
	}
	return nil
}
