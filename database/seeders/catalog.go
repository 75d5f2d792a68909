package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/escobarvape/backend/app/models"
)

func init() {
	register("catalog", seedCatalog)
	register("orders", seedOrders)
}

var seedProducts = []models.Product{
	{
		Name:     "Mango Ice",
		Category: "disposable",
		Image:    "/storage/uploads/mango-ice.jpg",
		Price:    350,
		Branches: map[string][]models.Variant{
			"main":   {{Name: "Mango", Available: true}, {Name: "Mango Grape", Available: true}},
			"second": {{Name: "Mango", Available: true}, {Name: "Mango Grape", Available: false}},
			"third":  {{Name: "Mango", Available: false}},
		},
	},
	{
		Name:     "Frozen Grape",
		Category: "pod juice",
		Image:    "/storage/uploads/frozen-grape.jpg",
		Price:    280,
		Branches: map[string][]models.Variant{
			"main":   {{Name: "3mg", Available: true}, {Name: "6mg", Available: true}},
			"second": {{Name: "3mg", Available: true}},
		},
	},
	{
		Name:     "Classic Tobacco",
		Category: "freebase",
		Image:    "/storage/uploads/classic-tobacco.jpg",
		Price:    300,
		Branches: map[string][]models.Variant{
			"main":  {{Name: "6mg", Available: true}},
			"third": {{Name: "6mg", Available: true}, {Name: "12mg", Available: true}},
		},
	},
}

// seedCatalog wipes and recreates the sample product catalog.
func seedCatalog(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("products")
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	for i := range seedProducts {
		if _, err := col.InsertOne(ctx, seedProducts[i]); err != nil {
			return err
		}
	}
	return nil
}

// seedOrders creates a handful of sample orders across branches so the
// role-scoped listing is demonstrable straight after seeding. Depends on
// the catalog seeder having run in the same invocation.
func seedOrders(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")
	var mango models.Product
	if err := products.FindOne(ctx, bson.M{"name": "Mango Ice"}).Decode(&mango); err != nil {
		return err
	}
	var grape models.Product
	if err := products.FindOne(ctx, bson.M{"name": "Frozen Grape"}).Decode(&grape); err != nil {
		return err
	}

	now := time.Now().UTC()
	orders := []models.Order{
		{
			Customer:    models.Customer{Name: "Ana Reyes", Contact: "09170000001"},
			Items:       []models.OrderItem{{Product: mango.ID, Variant: "Mango", Quantity: 2, Price: mango.Price, Branch: "main"}},
			Total:       2 * mango.Price,
			OrderNumber: "ORD-" + now.Format("20060102") + "-0001",
			Status:      models.StatusReceived,
			Branch:      "main",
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			Customer:    models.Customer{Name: "Ben Cruz", Contact: "09170000002"},
			Items:       []models.OrderItem{{Product: grape.ID, Variant: "3mg", Quantity: 1, Price: grape.Price, Branch: "second"}},
			Total:       grape.Price,
			OrderNumber: "ORD-" + now.Format("20060102") + "-0002",
			Status:      models.StatusPreparing,
			Branch:      "second",
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			Customer:    models.Customer{Name: "Carla Lim", Contact: "09170000003"},
			Items:       []models.OrderItem{{Product: mango.ID, Variant: "Mango Grape", Quantity: 1, Price: mango.Price, Branch: "main"}},
			Total:       mango.Price,
			OrderNumber: "ORD-" + now.Format("20060102") + "-0003",
			Status:      models.StatusReady,
			Branch:      "main",
			CreatedAt:   now, UpdatedAt: now,
		},
	}

	col := db.Collection("orders")
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	for i := range orders {
		if _, err := col.InsertOne(ctx, orders[i]); err != nil {
			return err
		}
	}
	return nil
}
