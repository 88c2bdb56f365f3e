package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var paymentMethods = map[string]bool{
	"cod":      true,
	"razorpay": true,
	"phonepe":  true,
	"stripe":   true,
}

type createOrderInput struct {
	UserID          string             `json:"userId" binding:"required"`
	Items           []models.OrderItem `json:"items" binding:"required"`
	ShippingAddress models.Address     `json:"shippingAddress" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
	CouponCode      string             `json:"couponCode"`
	PaymentResult   struct {
		TransactionID  string `json:"transactionId"`
		GatewayOrderID string `json:"gatewayOrderId"`
		Status         string `json:"status"`
	} `json:"paymentResult"`
}

// CreateOrder turns the submitted cart lines into an order document.
// Totals are always recomputed here, the client quote is never trusted.
func CreateOrder(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
		return
	}
	if !paymentMethods[input.PaymentMethod] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order line"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subtotal := utils.ComputeSubtotal(input.Items)

	var discount float64
	var couponCode string
	if input.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(input.CouponCode))

		var coupon models.Coupon
		err := database.Mongo.Collection("coupons").
			FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown coupon code"})
			return
		}

		validation := utils.ApplyCoupon(coupon, subtotal)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}
		discount = validation.Discount
		couponCode = code
	}

	shippingFee := utils.ComputeShippingFee(subtotal)
	amount := utils.Round2(subtotal - discount + shippingFee)

	paymentStatus := models.PaymentPending
	if input.PaymentMethod != "cod" && input.PaymentResult.Status == models.PaymentCompleted {
		paymentStatus = models.PaymentCompleted
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          input.UserID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        subtotal,
		Discount:        discount,
		CouponCode:      couponCode,
		ShippingFee:     shippingFee,
		Amount:          amount,
		Status:          models.OrderProcessing,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   paymentStatus,
		TransactionID:   input.PaymentResult.TransactionID,
		GatewayOrderID:  input.PaymentResult.GatewayOrderID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := database.Mongo.Collection("orders").InsertOne(ctx, order); err != nil {
		log.Printf("❌ Order insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation error"})
		return
	}

	// stock decrement after the fact, no reservation
	for _, item := range order.Items {
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		_, err = database.Mongo.Collection("products").UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$inc": bson.M{"countInStock": -item.Quantity}})
		if err != nil {
			log.Printf("⚠️ Stock decrement failed for %s: %v", item.ProductID, err)
		}
	}

	database.Mongo.Collection("carts").DeleteOne(ctx, bson.M{"userId": order.UserID})
	cache.PublishCartEvent(order.UserID, "cleared")
	cache.InvalidateProductCache()

	go sendOrderConfirmation(order)

	log.Printf("📦 Order %s created for %s (₹%.2f, %s)",
		order.ID.Hex(), order.UserID, order.Amount, order.PaymentMethod)

	c.JSON(http.StatusCreated, order)
}

// sendOrderConfirmation emails the confirmation with the PDF invoice
// attached. Guests without a stored email are skipped.
func sendOrderConfirmation(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)
	if err != nil || user.Email == "" {
		return
	}

	pdf, err := utils.GenerateInvoicePDF(order, user.Email)
	if err != nil {
		log.Printf("⚠️ Invoice PDF error for order %s: %v", order.ID.Hex(), err)
		pdf = nil
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	if err := utils.SendEmail(user.Email, "Your SwadBazaar order is confirmed 🎉", html, pdf); err != nil {
		log.Printf("❌ Confirmation email error for order %s: %v", order.ID.Hex(), err)
		return
	}
	log.Printf("📧 Confirmation sent for order %s", order.ID.Hex())
}

// GetMyOrders lists the orders of a user, newest first.
func GetMyOrders(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID"})
		return
	}
	if userID != c.GetString("user_id") && !c.GetBool("isAdmin") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your orders"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Mongo.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Printf("❌ Orders find error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Orders read error"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Orders decode error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID returns a single order, scoped to its owner.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.Mongo.Collection("orders").
		FindOne(ctx, bson.M{"_id": oid, "userId": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}
