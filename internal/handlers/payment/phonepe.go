package payment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== PHONEPE ==================

func phonePeBase() string {
	if base := os.Getenv("PHONEPE_BASE_URL"); base != "" {
		return base
	}
	return "https://api.phonepe.com/apis/hermes"
}

// PhonePePayChecksum builds the X-VERIFY header for the pay call.
func PhonePePayChecksum(base64Payload, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(base64Payload + "/pg/v1/pay" + saltKey))
	return hex.EncodeToString(sum[:]) + "###" + saltIndex
}

// PhonePeStatusChecksum builds the X-VERIFY header for the status call.
func PhonePeStatusChecksum(merchantID, merchantTransactionID, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte("/pg/v1/status/" + merchantID + "/" + merchantTransactionID + saltKey))
	return hex.EncodeToString(sum[:]) + "###" + saltIndex
}

// InitiatePhonePePayment starts a PAY_PAGE transaction for an order and
// returns the hosted payment URL.
func InitiatePhonePePayment(c *gin.Context) {
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

	merchantID := os.Getenv("PHONEPE_MERCHANT_ID")
	saltKey := os.Getenv("PHONEPE_SALT_KEY")
	saltIndex := os.Getenv("PHONEPE_SALT_INDEX")
	if saltIndex == "" {
		saltIndex = "1"
	}

	mtid := "MT" + uuid.NewString()[:16]

	payload, _ := json.Marshal(map[string]interface{}{
		"merchantId":            merchantID,
		"merchantTransactionId": mtid,
		"merchantUserId":        order.UserID,
		"amount":                utils.ToPaise(order.Amount),
		"redirectUrl":           os.Getenv("FRONTEND_URL") + "/payment/phonepe/return",
		"redirectMode":          "REDIRECT",
		"callbackUrl":           os.Getenv("BACKEND_URL") + "/api/payment/phonepe/status/" + mtid,
		"paymentInstrument":     map[string]string{"type": "PAY_PAGE"},
	})
	encoded := base64.StdEncoding.EncodeToString(payload)

	body, _ := json.Marshal(map[string]string{"request": encoded})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		phonePeBase()+"/pg/v1/pay", bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gateway request error"})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", PhonePePayChecksum(encoded, saltKey, saltIndex))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ PhonePe pay error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway unreachable"})
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var payResp struct {
		Success bool `json:"success"`
		Data    struct {
			InstrumentResponse struct {
				RedirectInfo struct {
					URL string `json:"url"`
				} `json:"redirectInfo"`
			} `json:"instrumentResponse"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &payResp); err != nil || !payResp.Success {
		log.Printf("❌ PhonePe pay rejected (%d): %s", resp.StatusCode, respBody)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway rejected the payment"})
		return
	}

	_, err = database.Mongo.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"gatewayOrderId": mtid, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	log.Printf("💳 PhonePe transaction %s initiated for order %s (₹%.2f)",
		mtid, order.ID.Hex(), order.Amount)

	c.JSON(http.StatusOK, gin.H{
		"merchantTransactionId": mtid,
		"redirectUrl":           payResp.Data.InstrumentResponse.RedirectInfo.URL,
	})
}

// PhonePeStatus polls the gateway for a transaction and updates the
// matching order's payment status.
func PhonePeStatus(c *gin.Context) {
	mtid := c.Param("mtid")
	if mtid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing transaction ID"})
		return
	}

	merchantID := os.Getenv("PHONEPE_MERCHANT_ID")
	saltKey := os.Getenv("PHONEPE_SALT_KEY")
	saltIndex := os.Getenv("PHONEPE_SALT_INDEX")
	if saltIndex == "" {
		saltIndex = "1"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		phonePeBase()+"/pg/v1/status/"+merchantID+"/"+mtid, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gateway request error"})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-MERCHANT-ID", merchantID)
	req.Header.Set("X-VERIFY", PhonePeStatusChecksum(merchantID, mtid, saltKey, saltIndex))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ PhonePe status error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway unreachable"})
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var statusResp struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
		Data    struct {
			TransactionID string `json:"transactionId"`
			State         string `json:"state"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &statusResp); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway response error"})
		return
	}

	paymentStatus := models.PaymentPending
	switch statusResp.Code {
	case "PAYMENT_SUCCESS":
		paymentStatus = models.PaymentCompleted
	case "PAYMENT_ERROR", "PAYMENT_DECLINED", "TIMED_OUT":
		paymentStatus = models.PaymentFailed
	}

	update := bson.M{"paymentStatus": paymentStatus, "updatedAt": time.Now()}
	if statusResp.Data.TransactionID != "" {
		update["transactionId"] = statusResp.Data.TransactionID
	}

	var order models.Order
	err = database.Mongo.Collection("orders").FindOneAndUpdate(ctx,
		bson.M{"gatewayOrderId": mtid},
		bson.M{"$set": update}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this transaction"})
		return
	}

	log.Printf("💳 PhonePe %s → %s (order %s)", mtid, statusResp.Code, order.ID.Hex())

	c.JSON(http.StatusOK, gin.H{
		"code":          statusResp.Code,
		"paymentStatus": paymentStatus,
		"orderId":       order.ID.Hex(),
	})
}
