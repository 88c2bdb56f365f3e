package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is one package size of a product with its own pricing.
type Variant struct {
	Weight        string  `bson:"weight" json:"weight"`
	Price         float64 `bson:"price" json:"price"`
	OriginalPrice float64 `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Category      string             `bson:"category" json:"category"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	Variants      []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	CountInStock  int                `bson:"countInStock" json:"countInStock"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
