package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateStock sets or tops up a product's countInStock (admin). The write is
// a direct overwrite; there is no reservation protocol.
func UpdateStock(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Quantity int    `json:"quantity"`
		Type     string `json:"type" binding:"required"` // "restock" | "adjustment"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Mongo.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var newStock int
	switch req.Type {
	case "restock":
		newStock = product.CountInStock + req.Quantity
	case "adjustment":
		newStock = req.Quantity // absolute value
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operation type"})
		return
	}

	if newStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot go negative"})
		return
	}

	_, err = database.Mongo.Collection("products").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"countInStock": newStock, "updatedAt": time.Now()}})
	if err != nil {
		log.Printf("❌ Stock update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock update error"})
		return
	}

	cache.InvalidateProductCache()

	log.Printf("✅ Stock updated for %s: %d → %d", product.Name, product.CountInStock, newStock)
	c.JSON(http.StatusOK, gin.H{
		"productId": id.Hex(),
		"stock":     newStock,
	})
}
