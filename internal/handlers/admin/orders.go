package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validStatuses = map[string]bool{
	models.OrderProcessing: true,
	models.OrderShipped:    true,
	models.OrderDelivered:  true,
	models.OrderCancelled:  true,
}

// GetAllOrders lists every order, newest first, optional ?status= filter.
func GetAllOrders(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := database.Mongo.Collection("orders").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
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

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// UpdateOrderStatus overwrites the status field. No transition rules,
// any of the four values can be set directly.
func UpdateOrderStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.Mongo.Collection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	go notifyStatusChange(order, input.Status)

	log.Printf("📦 Order %s → %s", order.ID.Hex(), input.Status)
	c.JSON(http.StatusOK, order)
}

func notifyStatusChange(order models.Order, newStatus string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)
	if err != nil || user.Email == "" {
		return
	}

	if err := utils.SendOrderStatusEmail(order, user.Email, newStatus); err != nil {
		log.Printf("❌ Status email error for order %s: %v", order.ID.Hex(), err)
	}
}
