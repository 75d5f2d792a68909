// Package controllers is the HTTP boundary. Controllers bind input, call a
// service, and translate errors into the response envelope; they hold no
// business rules of their own.
package controllers

import (
	"errors"

	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/ctx"
	"github.com/escobarvape/backend/pkg/logger"
)

// fail writes err as an envelope response. Taxonomy errors surface their
// client-safe message with the mapped status; anything else is logged and
// turned into a generic 500 so internals never leak.
func fail(c *ctx.Context, err error) {
	status := apperr.Status(err)
	if status >= 500 {
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(status, "something went wrong")
		return
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.Error(status, ae.Message)
		return
	}
	c.Error(status, "request failed")
}
