// Package repositories is the persistence layer. Each repository owns one
// collection and translates driver errors into the application error
// taxonomy so services and controllers never see raw driver errors.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/escobarvape/backend/pkg/apperr"
)

// mapErr translates a driver error into the application taxonomy.
// entity names what was being operated on ("order", "admin") for messages.
func mapErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.Wrap(apperr.NotFound, err, "%s not found", entity)
	case mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(apperr.Conflict, err, "%s already exists", entity)
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return apperr.Wrap(apperr.Unavailable, err, "store unavailable")
	default:
		return err
	}
}
