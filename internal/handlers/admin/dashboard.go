package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboardStats returns the admin dashboard counters.
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	orders := database.Mongo.Collection("orders")

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$amount"},
		}},
	}

	cursor, err := orders.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("❌ Stats aggregation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stats read error"})
		return
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stats decode error"})
		return
	}

	var totalOrders int64
	var totalRevenue float64
	byStatus := make(map[string]int64)
	for _, row := range rows {
		totalOrders += row.Count
		byStatus[row.Status] = row.Count
		// cancelled orders don't count toward revenue
		if row.Status != models.OrderCancelled {
			totalRevenue += row.Revenue
		}
	}

	var averageOrderValue float64
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	products := database.Mongo.Collection("products")
	totalProducts, _ := products.CountDocuments(ctx, bson.M{"isActive": true})
	outOfStock, _ := products.CountDocuments(ctx, bson.M{"isActive": true, "countInStock": 0})
	lowStock, _ := products.CountDocuments(ctx, bson.M{
		"isActive":     true,
		"countInStock": bson.M{"$gt": 0, "$lt": 10},
	})

	totalUsers, _ := database.Mongo.Collection("users").CountDocuments(ctx, bson.M{})

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":               totalOrders,
			"total_revenue":       totalRevenue,
			"average_order_value": averageOrderValue,
			"by_status":           byStatus,
		},
		"products": gin.H{
			"total":        totalProducts,
			"low_stock":    lowStock,
			"out_of_stock": outOfStock,
		},
		"users": gin.H{
			"total": totalUsers,
		},
		"generated_at": time.Now(),
	})
}
