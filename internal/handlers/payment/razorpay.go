package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const razorpayBase = "https://api.razorpay.com/v1"

// ================== RAZORPAY ==================

// CreateRazorpayOrder registers a gateway order for one of our orders.
// The amount always comes from the stored order, never the request.
func CreateRazorpayOrder(c *gin.Context) {
	var input struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oid, err := primitive.ObjectIDFromHex(input.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var order models.Order
	err = database.Mongo.Collection("orders").FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.PaymentStatus == models.PaymentCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already paid"})
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"amount":   utils.ToPaise(order.Amount),
		"currency": "INR",
		"receipt":  order.ID.Hex(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		razorpayBase+"/orders", bytes.NewReader(payload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gateway request error"})
		return
	}
	req.SetBasicAuth(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ Razorpay order error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway unreachable"})
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Razorpay order rejected (%d): %s", resp.StatusCode, body)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway rejected the order"})
		return
	}

	var gatewayOrder struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(body, &gatewayOrder); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway response error"})
		return
	}

	_, err = database.Mongo.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"gatewayOrderId": gatewayOrder.ID, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	log.Printf("💳 Razorpay order %s created for order %s (₹%.2f)",
		gatewayOrder.ID, order.ID.Hex(), order.Amount)

	c.JSON(http.StatusOK, gin.H{
		"razorpayOrderId": gatewayOrder.ID,
		"amount":          gatewayOrder.Amount,
		"currency":        gatewayOrder.Currency,
		"keyId":           os.Getenv("RAZORPAY_KEY_ID"),
	})
}

func razorpaySignature(orderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRazorpaySignature recomputes the checkout signature server-side.
func VerifyRazorpaySignature(orderID, paymentID, signature, keySecret string) bool {
	expected := razorpaySignature(orderID, paymentID, keySecret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// VerifyRazorpayPayment validates the checkout callback and marks the
// order paid. A bad signature fails closed.
func VerifyRazorpayPayment(c *gin.Context) {
	var input struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !VerifyRazorpaySignature(input.RazorpayOrderID, input.RazorpayPaymentID,
		input.RazorpaySignature, os.Getenv("RAZORPAY_KEY_SECRET")) {
		log.Printf("⚠️ Razorpay signature mismatch for %s", input.RazorpayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := database.Mongo.Collection("orders").FindOneAndUpdate(ctx,
		bson.M{"gatewayOrderId": input.RazorpayOrderID},
		bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentCompleted,
			"transactionId": input.RazorpayPaymentID,
			"updatedAt":     time.Now(),
		}}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this payment"})
		return
	}

	log.Printf("✅ Razorpay payment %s verified for order %s",
		input.RazorpayPaymentID, order.ID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified",
		"orderId": order.ID.Hex(),
	})
}
