package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin roles. Branch managers are scoped to exactly one branch;
// owners see everything.
const (
	RoleOwner         = "owner"
	RoleBranchManager = "branch manager"
)

// Admin is a back-office account. Password holds the bcrypt hash and is
// never serialized in API responses.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
	Branch   string             `bson:"branch,omitempty" json:"branch,omitempty"`
}

// RequiresBranch reports whether the admin's role demands a branch assignment.
func (a *Admin) RequiresBranch() bool {
	return a.Role == RoleBranchManager
}
