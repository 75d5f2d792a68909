package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/cache"
)

const (
	announcementCacheKey = "content:announcement"
	announcementCacheTTL = time.Minute
)

// AnnouncementStore manages the announcement singleton.
type AnnouncementStore interface {
	Get(ctx context.Context) (*models.Announcement, error)
	Upsert(ctx context.Context, message string, enabled bool) (*models.Announcement, error)
}

// SliderImageStore manages the promotional image list.
type SliderImageStore interface {
	All(ctx context.Context) ([]models.SliderImage, error)
	Create(ctx context.Context, img *models.SliderImage) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ContentService owns the site content: the announcement banner and the
// slider image carousel.
type ContentService struct {
	announcements AnnouncementStore
	sliders       SliderImageStore
}

func NewContentService(a AnnouncementStore, s SliderImageStore) *ContentService {
	return &ContentService{announcements: a, sliders: s}
}

// AnnouncementInput carries the writable announcement fields.
type AnnouncementInput struct {
	Message string `json:"message" validate:"required"`
	Enabled bool   `json:"enabled" validate:"boolean"`
}

// Announcement returns the current banner. A never-set banner comes back as
// a disabled empty one rather than an error.
func (s *ContentService) Announcement(ctx context.Context) (*models.Announcement, error) {
	var cached models.Announcement
	if cache.Get(announcementCacheKey, &cached) {
		return &cached, nil
	}

	a, err := s.announcements.Get(ctx)
	if err != nil {
		return nil, err
	}
	if a == nil {
		a = &models.Announcement{Message: "", Enabled: false}
	}
	_ = cache.Set(announcementCacheKey, a, announcementCacheTTL)
	return a, nil
}

// UpdateAnnouncement upserts the singleton and refreshes the cache.
func (s *ContentService) UpdateAnnouncement(ctx context.Context, in AnnouncementInput) (*models.Announcement, error) {
	a, err := s.announcements.Upsert(ctx, in.Message, in.Enabled)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(announcementCacheKey, a, announcementCacheTTL)
	return a, nil
}

// SliderImages returns every carousel entry.
func (s *ContentService) SliderImages(ctx context.Context) ([]models.SliderImage, error) {
	return s.sliders.All(ctx)
}

// SliderImageInput carries the writable slider image fields.
type SliderImageInput struct {
	URL string `json:"url" validate:"required,url"`
}

// AddSliderImage appends an image to the carousel.
func (s *ContentService) AddSliderImage(ctx context.Context, in SliderImageInput) (*models.SliderImage, error) {
	img := &models.SliderImage{URL: in.URL, CreatedAt: time.Now().UTC()}
	if err := s.sliders.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RemoveSliderImage deletes a carousel entry by id.
func (s *ContentService) RemoveSliderImage(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid slider image id %q", id)
	}
	return s.sliders.Delete(ctx, oid)
}
