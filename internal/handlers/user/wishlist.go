package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetWishlist returns the saved products of the authenticated user.
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		UserID     string   `bson:"userId"`
		ProductIDs []string `bson:"productIds"`
	}
	err := database.Mongo.Collection("wishlists").
		FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"userId": userID, "items": []models.Product{}})
		return
	}

	oids := make([]primitive.ObjectID, 0, len(doc.ProductIDs))
	for _, id := range doc.ProductIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	products := []models.Product{}
	if len(oids) > 0 {
		cursor, err := database.Mongo.Collection("products").Find(ctx,
			bson.M{"_id": bson.M{"$in": oids}, "isActive": true},
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Wishlist read error"})
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Wishlist read error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "items": products})
}

// AddToWishlist saves a product for later.
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Mongo.Collection("products").
		CountDocuments(ctx, bson.M{"_id": oid, "isActive": true})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	_, err = database.Mongo.Collection("wishlists").UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$addToSet": bson.M{"productIds": req.ProductID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("❌ Wishlist add error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Wishlist update error"})
		return
	}

	log.Printf("⭐ Product %s added to wishlist of %s", req.ProductID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Product added to wishlist", "productId": req.ProductID})
}

// RemoveFromWishlist removes a saved product.
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.Mongo.Collection("wishlists").UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$pull": bson.M{"productIds": productID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		log.Printf("❌ Wishlist remove error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Wishlist update error"})
		return
	}

	log.Printf("🗑️ Product %s removed from wishlist of %s", productID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}
