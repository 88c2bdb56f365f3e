package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Direct overwrite by admin actions, no transition table.
const (
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Payment status values.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

type Address struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Phone      string `bson:"phone" json:"phone"`
	Line1      string `bson:"line1" json:"line1"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
}

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Variant   string  `bson:"variant,omitempty" json:"variant,omitempty"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Discount        float64            `bson:"discount" json:"discount"`
	CouponCode      string             `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	ShippingFee     float64            `bson:"shippingFee" json:"shippingFee"`
	Amount          float64            `bson:"amount" json:"amount"`
	Status          string             `bson:"status" json:"status"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"` // cod | razorpay | phonepe | stripe
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	GatewayOrderID  string             `bson:"gatewayOrderId,omitempty" json:"gatewayOrderId,omitempty"`
	ShipmentID      int64              `bson:"shipmentId,omitempty" json:"shipmentId,omitempty"`
	AWBCode         string             `bson:"awbCode,omitempty" json:"awbCode,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
