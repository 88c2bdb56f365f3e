package payment

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== COUPONS ==================

// ValidateCoupon quotes a coupon against a cart total.
// GET /api/coupons/validate?code=SAVE10&total=650
func ValidateCoupon(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing coupon code"})
		return
	}

	total, err := strconv.ParseFloat(c.Query("total"), 64)
	if err != nil || total < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	err = database.Mongo.Collection("coupons").FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		c.JSON(http.StatusOK, models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Unknown coupon code",
		})
		return
	}

	c.JSON(http.StatusOK, utils.ApplyCoupon(coupon, total))
}

// CreateCoupon adds a coupon (admin).
func CreateCoupon(c *gin.Context) {
	var input struct {
		Code     string  `json:"code" binding:"required"`
		Type     string  `json:"type" binding:"required"`
		Value    float64 `json:"value" binding:"required"`
		MinOrder float64 `json:"minOrder"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Type != "percent" && input.Type != "flat" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be percent or flat"})
		return
	}
	if input.Value <= 0 || (input.Type == "percent" && input.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon value"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coupons := database.Mongo.Collection("coupons")

	count, err := coupons.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupon check error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A coupon with this code already exists"})
		return
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now()
	coupon := models.Coupon{
		ID:        primitive.NewObjectID(),
		Code:      code,
		Type:      input.Type,
		Value:     input.Value,
		MinOrder:  input.MinOrder,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := coupons.InsertOne(ctx, coupon); err != nil {
		log.Printf("❌ Coupon insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupon creation error"})
		return
	}

	log.Printf("🎟️ Coupon %s created (%s %.2f)", code, coupon.Type, coupon.Value)
	c.JSON(http.StatusCreated, coupon)
}

// GetCoupons lists all coupons (admin).
func GetCoupons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Mongo.Collection("coupons").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupons read error"})
		return
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupons decode error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// UpdateCoupon patches value, minOrder or isActive (admin).
func UpdateCoupon(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	var input struct {
		Value    *float64 `json:"value"`
		MinOrder *float64 `json:"minOrder"`
		IsActive *bool    `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Value != nil {
		update["value"] = *input.Value
	}
	if input.MinOrder != nil {
		update["minOrder"] = *input.MinOrder
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("coupons").
		UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupon update error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon updated"})
}

// DeleteCoupon removes a coupon (admin).
func DeleteCoupon(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Mongo.Collection("coupons").DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coupon delete error"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	log.Printf("🗑️ Coupon %s deleted", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
