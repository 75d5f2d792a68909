// Package database owns the MongoDB client for the process.
//
// Repositories resolve their collection per call via C(name), so constructing
// them is free and safe before Connect() has run (nothing touches the server
// until an operation executes).
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/escobarvape/backend/config"
)

// OpTimeout bounds every store operation so a dead server surfaces as an
// error instead of a hung request.
const OpTimeout = 5 * time.Second

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the client, verifies the server with a ping, and ensures the
// unique indexes the data model relies on.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())

	return ensureIndexes(ctx)
}

func ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("admins").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("database: admins index: %w", err)
	}

	_, err = db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("database: orders index: %w", err)
	}

	// Time-based index so the log collection stays queryable.
	if col := config.MongoLogCollection(); col != "" {
		_, _ = db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "time", Value: -1}},
		})
	}

	return nil
}

// DB returns the database handle. Nil before Connect().
func DB() *mongo.Database { return db }

// C returns a collection handle by name.
func C(name string) *mongo.Collection { return db.Collection(name) }

// Ping verifies the server is still reachable.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	return client.Ping(ctx, nil)
}

// Disconnect closes the client. Safe to call when never connected.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// OpCtx returns a context bounded by OpTimeout for a single store operation.
func OpCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, OpTimeout)
}
