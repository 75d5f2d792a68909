package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is the contact block embedded in each order.
type Customer struct {
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
}

// OrderItem is a single line of an order. Product references a catalog
// document by id; ProductName and ProductPrice are filled in at read time
// from the catalog and are never persisted.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Variant  string             `bson:"variant" json:"variant"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	Branch   string             `bson:"branch" json:"branch"`

	ProductName  string  `bson:"-" json:"productName,omitempty"`
	ProductPrice float64 `bson:"-" json:"productPrice,omitempty"`
}

// Order is a customer order. Branch is stamped at creation from the first
// item and scopes visibility for branch managers. Items whose branches
// differ from the order branch are allowed but the order is still filed
// under the first item's branch.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer    Customer           `bson:"customer" json:"customer"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Total       float64            `bson:"total" json:"total"`
	OrderNumber string             `bson:"orderNumber" json:"orderNumber"`
	Status      Status             `bson:"status" json:"status"`
	Branch      string             `bson:"branch" json:"branch"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
