package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coupon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"` // unique, stored uppercase
	Type      string             `bson:"type" json:"type"` // "percent" | "flat"
	Value     float64            `bson:"value" json:"value"`
	MinOrder  float64            `bson:"minOrder" json:"minOrder"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CouponValidation struct {
	IsValid      bool    `json:"is_valid"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Type         string  `json:"type,omitempty"`
	Code         string  `json:"code,omitempty"`
}
