package models

import "time"

// CartItem is a denormalized line item: title/price/image are copied from
// the product at add time, not referenced live.
type CartItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Variant   string  `bson:"variant,omitempty" json:"variant,omitempty"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Cart holds one document per userId or guest id.
type Cart struct {
	UserID    string     `bson:"userId" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
