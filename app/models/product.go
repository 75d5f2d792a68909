package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Variant is a named sub-option of a product (a flavor, a size) whose
// availability is tracked per branch.
type Variant struct {
	Name      string `bson:"name" json:"name"`
	Available bool   `bson:"available" json:"available"`
}

// Product is a catalog entry. Branches maps a branch name to the ordered
// list of variants stocked there.
type Product struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name     string               `bson:"name" json:"name"`
	Category string               `bson:"category" json:"category"`
	Image    string               `bson:"image" json:"image"`
	Price    float64              `bson:"price" json:"price"`
	Branches map[string][]Variant `bson:"branches" json:"branches"`
}
