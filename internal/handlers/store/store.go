package store

import (
	"context"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortByDistance attaches the distance from (lat, lng) to each store and
// orders the result nearest first.
func SortByDistance(stores []models.Store, lat, lng float64) []models.StoreWithDistance {
	result := make([]models.StoreWithDistance, 0, len(stores))
	for _, s := range stores {
		result = append(result, models.StoreWithDistance{
			Store:      s,
			DistanceKm: utils.Round2(utils.Haversine(lat, lng, s.Lat, s.Lng)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}

// GetStores lists retail stores. With ?lat=&lng= the list is sorted by
// distance from the given point, with distanceKm on each entry.
func GetStores(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Mongo.Collection("stores").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "city", Value: 1}}))
	if err != nil {
		log.Printf("❌ Stores find error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stores read error"})
		return
	}
	defer cursor.Close(ctx)

	stores := []models.Store{}
	if err := cursor.All(ctx, &stores); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stores decode error"})
		return
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusOK, gin.H{"stores": stores})
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": SortByDistance(stores, lat, lng)})
}

// CreateStore adds a retail store (admin).
func CreateStore(c *gin.Context) {
	var input struct {
		Name    string  `json:"name" binding:"required"`
		Address string  `json:"address" binding:"required"`
		City    string  `json:"city" binding:"required"`
		Phone   string  `json:"phone"`
		Hours   string  `json:"hours"`
		Lat     float64 `json:"lat" binding:"required"`
		Lng     float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := models.Store{
		ID:      primitive.NewObjectID(),
		Name:    input.Name,
		Address: input.Address,
		City:    input.City,
		Phone:   input.Phone,
		Hours:   input.Hours,
		Lat:     input.Lat,
		Lng:     input.Lng,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.Mongo.Collection("stores").InsertOne(ctx, store); err != nil {
		log.Printf("❌ Store insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store creation error"})
		return
	}

	log.Printf("🏪 Store %s added in %s", store.Name, store.City)
	c.JSON(http.StatusCreated, store)
}

// DeleteStore removes a retail store (admin).
func DeleteStore(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("stores").DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store delete error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
