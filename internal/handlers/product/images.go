package product

import (
	"context"
	"net/http"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadImage stores a product image in MinIO and appends its URL to the
// product document (admin).
func UploadImage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form file 'image' is required"})
		return
	}

	url, err := services.UploadProductImage(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload error: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("products").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": url},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cache.InvalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"url": url})
}
