// Package services holds business rules. Services speak to stores through
// narrow interfaces so tests can swap in fakes without a running database.
package services

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
)

// visibilityPolicy produces the store filter an authenticated caller is
// allowed to see orders through.
type visibilityPolicy func(claims *auth.Claims) bson.M

var orderVisibility = map[string]visibilityPolicy{
	models.RoleOwner: func(*auth.Claims) bson.M {
		return bson.M{}
	},
	models.RoleBranchManager: func(c *auth.Claims) bson.M {
		return bson.M{"branch": c.Branch}
	},
}

// OrderFilter returns the visibility filter for the caller's role.
// Unknown roles are rejected rather than defaulting to any scope.
func OrderFilter(claims *auth.Claims) (bson.M, error) {
	policy, ok := orderVisibility[claims.Role]
	if !ok {
		return nil, apperr.New(apperr.Forbidden, "role %q may not view orders", claims.Role)
	}
	return policy(claims), nil
}
