package controllers

import (
	"github.com/escobarvape/backend/app/services"
	"github.com/escobarvape/backend/pkg/ctx"
)

// ContentController handles the announcement banner and the slider carousel.
type ContentController struct {
	content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{content: content}
}

// ShowAnnouncement returns the current banner.
func (cc *ContentController) ShowAnnouncement(c *ctx.Context) {
	a, err := cc.content.Announcement(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(a)
}

// UpdateAnnouncement upserts the banner singleton.
func (cc *ContentController) UpdateAnnouncement(c *ctx.Context) {
	var in services.AnnouncementInput
	if !c.BindJSON(&in) {
		return
	}

	a, err := cc.content.UpdateAnnouncement(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(a)
}

// ListSliderImages returns every carousel entry.
func (cc *ContentController) ListSliderImages(c *ctx.Context) {
	images, err := cc.content.SliderImages(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(images)
}

// AddSliderImage appends an image to the carousel.
func (cc *ContentController) AddSliderImage(c *ctx.Context) {
	var in services.SliderImageInput
	if !c.BindJSON(&in) {
		return
	}

	img, err := cc.content.AddSliderImage(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(img)
}

// RemoveSliderImage deletes a carousel entry.
func (cc *ContentController) RemoveSliderImage(c *ctx.Context) {
	if err := cc.content.RemoveSliderImage(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"deleted": c.Param("id")})
}
