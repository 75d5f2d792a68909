package controllers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/logger"
	"github.com/escobarvape/backend/pkg/reqid"
	"github.com/escobarvape/backend/pkg/storage"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadController stores multipart image uploads on the storage disk and
// returns their public URL.
type UploadController struct{}

func NewUploadController() *UploadController { return &UploadController{} }

// Upload accepts a multipart "image" field, stores it under uploads/, and
// returns the public URL the catalog and slider can reference.
func (uc *UploadController) Upload(c *ctx.Context) {
	file, header, err := c.FormFile("image")
	if err != nil {
		fail(c, apperr.New(apperr.InvalidInput, "missing image file"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		fail(c, apperr.New(apperr.InvalidInput, "unsupported image type %q", ext))
		return
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), reqid.New()[:8], ext)
	path := "uploads/" + name

	if err := storage.PutStream(path, file); err != nil {
		fail(c, apperr.Wrap(apperr.Unavailable, err, "could not store upload"))
		return
	}

	logger.WithCtx(c.Context()).Info("image uploaded",
		"path", path, "size", header.Size)
	c.Created(map[string]string{"url": storage.URL(path)})
}
