// Package seeders populates a fresh database with the baseline data set.
// Each seeder is registered by name; `escobar seed` runs them all, or a
// subset by name.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/escobarvape/backend/pkg/logger"
)

// SeederFunc populates one slice of the database.
type SeederFunc func(ctx context.Context, db *mongo.Database) error

type entry struct {
	name string
	fn   SeederFunc
}

var registry []entry

func register(name string, fn SeederFunc) {
	registry = append(registry, entry{name: name, fn: fn})
}

// Run executes the named seeders in registration order. With no names it
// runs everything.
func Run(ctx context.Context, db *mongo.Database, names ...string) error {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}

	for _, e := range registry {
		if len(want) > 0 && !want[e.name] {
			continue
		}
		logger.Info("seeding", "seeder", e.name)
		if err := e.fn(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", e.name, err)
		}
	}
	return nil
}

// Names lists the registered seeders in run order.
func Names() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = e.name
	}
	return out
}
