package models

import "time"

type User struct {
	ID         string    `bson:"_id,omitempty" json:"userId"`
	Name       string    `bson:"name,omitempty" json:"name,omitempty"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Password   string    `bson:"password,omitempty" json:"-"`
	Provider   string    `bson:"provider,omitempty" json:"provider,omitempty"` // local | google | whatsapp
	ProviderID string    `bson:"providerId,omitempty" json:"-"`
	IsAdmin    bool      `bson:"isAdmin" json:"isAdmin"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
