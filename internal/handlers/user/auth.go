package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== EMAIL / PASSWORD + OTP ==================

// Register creates an unverified account and emails a 6-digit OTP.
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"email": email, "provider": "local"}).
		Decode(&existing)
	if err == nil && existing.IsVerified {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration error"})
		return
	}

	user := models.User{
		ID:         primitive.NewObjectID().Hex(),
		Name:       input.Name,
		Email:      email,
		Phone:      input.Phone,
		Password:   hashedPassword,
		Provider:   "local",
		IsVerified: false,
		CreatedAt:  time.Now(),
	}

	// a half-finished registration just gets overwritten on retry
	if existing.ID != "" {
		user.ID = existing.ID
		_, err = database.Mongo.Collection("users").ReplaceOne(ctx, bson.M{"_id": existing.ID}, user)
	} else {
		_, err = database.Mongo.Collection("users").InsertOne(ctx, user)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation error"})
		return
	}

	code := utils.GenerateOTP()
	if err := cache.StoreOTP("email", email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP storage error"})
		return
	}

	go func() {
		if err := utils.SendOTPEmail(email, code); err != nil {
			log.Printf("❌ OTP email error for %s: %v", email, err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Check your email for the verification code",
		"userId":  user.ID,
	})
}

// VerifyOTP confirms the emailed code, marks the account verified and
// returns a session token.
func VerifyOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	stored := cache.GetOTP("email", email)
	if stored == "" || stored != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}
	cache.DeleteOTP("email", email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").
		FindOneAndUpdate(ctx,
			bson.M{"email": email, "provider": "local"},
			bson.M{"$set": bson.M{"isVerified": true}}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	user.IsVerified = true

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	log.Printf("✅ Email verified: %s", email)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
	})
}

// ResendOTP re-issues the verification code for an unverified account.
func ResendOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"email": email, "provider": "local"}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account already verified"})
		return
	}

	code := utils.GenerateOTP()
	if err := cache.StoreOTP("email", email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP storage error"})
		return
	}

	go func() {
		if err := utils.SendOTPEmail(email, code); err != nil {
			log.Printf("❌ OTP email error for %s: %v", email, err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// Login authenticates a verified local account.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").
		FindOne(ctx, bson.M{"email": email, "provider": "local"}).
		Decode(&user)
	if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified. Request a new code"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"userId":  user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"isAdmin": user.IsAdmin,
	})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Mongo.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile overwrites editable profile fields.
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Phone != "" {
		update["phone"] = input.Phone
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.Mongo.Collection("users").
		UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update error"})
		return
	}

	Me(c)
}
