package payment

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/services"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== SHIPPING ==================

// GetShippingOptions quotes delivery for a cart total.
// GET /api/shipping/options?total=350
func GetShippingOptions(c *gin.Context) {
	total, err := strconv.ParseFloat(c.DefaultQuery("total", "0"), 64)
	if err != nil || total < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total"})
		return
	}

	fee := utils.ComputeShippingFee(total)
	calc := models.ShippingCalculation{
		Options: []models.ShippingOption{
			{
				ID:            "standard",
				Name:          "Standard delivery",
				Description:   "Delivered in 3-5 business days",
				Price:         fee,
				EstimatedDays: 5,
			},
		},
		FreeThreshold: utils.FreeShippingThreshold,
		CartTotal:     total,
		IsFree:        fee == 0,
	}

	c.JSON(http.StatusOK, calc)
}

// CreateShippingOrder forwards an order to the courier aggregator and
// stores the returned shipment and AWB ids (admin).
func CreateShippingOrder(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.Order
	err = database.Mongo.Collection("orders").FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.ShipmentID != 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Shipment already created for this order"})
		return
	}

	var user models.User
	userEmail := ""
	if err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err == nil {
		userEmail = user.Email
	}

	result, err := services.CreateShipment(order, userEmail)
	if err != nil {
		log.Printf("❌ Shipment creation error for order %s: %v", order.ID.Hex(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Courier service error"})
		return
	}

	_, err = database.Mongo.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"shipmentId": result.ShipmentID,
			"awbCode":    result.AWBCode,
			"updatedAt":  time.Now(),
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	log.Printf("🚚 Shipment %d created for order %s (AWB %s)",
		result.ShipmentID, order.ID.Hex(), result.AWBCode)

	c.JSON(http.StatusOK, gin.H{
		"shipmentId": result.ShipmentID,
		"awbCode":    result.AWBCode,
		"status":     result.Status,
	})
}
