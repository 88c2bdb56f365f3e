package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists the catalog, optionally filtered by ?category=.
// The unfiltered list is served from Redis when warm.
func GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Query("category")

	if category == "" {
		if val, err := cache.GetCache("products:all"); err == nil && val != "" {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	filter := bson.M{"isActive": true}
	if category != "" {
		filter["category"] = category
	}

	cur, err := database.Mongo.Collection("products").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if category == "" {
		if data, err := json.Marshal(products); err == nil {
			cache.SetCache("products:all", data, cache.ProductCacheTTL)
		}
	}

	c.JSON(http.StatusOK, products)
}

// GetProductBySlug returns a single product by its unique slug.
func GetProductBySlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := database.Mongo.Collection("products").
		FindOne(ctx, bson.M{"slug": c.Param("slug")}).
		Decode(&product)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog entry (admin).
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Category == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, category and a positive price are required"})
		return
	}

	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// slug is the storefront's lookup key, keep it unique
	count, err := database.Mongo.Collection("products").CountDocuments(ctx, bson.M{"slug": p.Slug})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this slug already exists"})
		return
	}

	p.ID = primitive.NewObjectID()
	p.IsActive = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := database.Mongo.Collection("products").InsertOne(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product creation error: " + err.Error()})
		return
	}

	cache.InvalidateProductCache()
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// UpdateProduct overwrites catalog fields (admin).
func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Category != "" {
		update["category"] = input.Category
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.Price > 0 {
		update["price"] = input.Price
	}
	if input.OriginalPrice > 0 {
		update["originalPrice"] = input.OriginalPrice
	}
	if input.Variants != nil {
		update["variants"] = input.Variants
	}
	if input.Images != nil {
		update["images"] = input.Images
	}
	if input.Tags != nil {
		update["tags"] = input.Tags
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("products").
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cache.InvalidateProductCache()

	var updated models.Product
	if err := database.Mongo.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err == nil {
		go services.IndexProduct(updated)
		c.JSON(http.StatusOK, updated)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct removes a product from the catalog (admin).
func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cache.InvalidateProductCache()
	go services.RemoveProductFromIndex(id.Hex())

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}
