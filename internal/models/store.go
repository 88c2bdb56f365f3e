package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Store is a static location record for the store locator. Read-only after
// seeding.
type Store struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Address string             `bson:"address" json:"address"`
	City    string             `bson:"city" json:"city"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Hours   string             `bson:"hours,omitempty" json:"hours,omitempty"`
	Lat     float64            `bson:"lat" json:"lat"`
	Lng     float64            `bson:"lng" json:"lng"`
}

type StoreWithDistance struct {
	Store
	DistanceKm float64 `json:"distanceKm"`
}
