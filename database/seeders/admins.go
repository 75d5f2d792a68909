package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/auth"
)

func init() {
	register("admins", seedAdmins)
}

// seedAdmins wipes and recreates the baseline accounts: the owner plus one
// manager per branch.
func seedAdmins(ctx context.Context, db *mongo.Database) error {
	admins := []struct {
		name, username, password, role, branch string
	}{
		{"Rodney Escobar", "oddy", "oddy", models.RoleOwner, ""},
		{"First Branch Manager", "first", "@escobarvape1", models.RoleBranchManager, "main"},
		{"Second Branch Manager", "second", "@escobarvape2", models.RoleBranchManager, "second"},
		{"Third Branch Manager", "third", "@escobarvape3", models.RoleBranchManager, "third"},
	}

	col := db.Collection("admins")
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	for _, a := range admins {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return err
		}
		_, err = col.InsertOne(ctx, models.Admin{
			Name:     a.name,
			Username: a.username,
			Password: hash,
			Role:     a.role,
			Branch:   a.branch,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
