package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is the site-wide notice banner. Logically a singleton:
// updates upsert the one document rather than appending.
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	Enabled   bool               `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SliderImage is one entry of the promotional image carousel.
type SliderImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL       string             `bson:"url" json:"url"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
