package user

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/services"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== WHATSAPP OTP LOGIN ==================

var phoneRegex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

func normalizePhone(raw string) string {
	phone := strings.TrimSpace(raw)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	// Indian numbers without a country code get +91 prepended
	if !strings.HasPrefix(phone, "+") && len(phone) == 10 {
		phone = "+91" + phone
	}
	return phone
}

// SendWhatsAppLoginOTP sends a 6-digit code to the given phone over WhatsApp.
func SendWhatsAppLoginOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := normalizePhone(input.Phone)
	if !phoneRegex.MatchString(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	code := utils.GenerateOTP()
	if err := cache.StoreOTP("whatsapp", phone, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP storage error"})
		return
	}

	if err := services.SendWhatsAppOTP(phone, code); err != nil {
		log.Printf("❌ WhatsApp send error for %s: %v", phone, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "WhatsApp delivery failed"})
		return
	}

	log.Printf("📱 WhatsApp OTP sent to %s", phone)
	c.JSON(http.StatusOK, gin.H{"message": "Code sent on WhatsApp"})
}

// VerifyWhatsAppLoginOTP checks the code and signs the user in, creating
// the account on first login.
func VerifyWhatsAppLoginOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := normalizePhone(input.Phone)

	stored := cache.GetOTP("whatsapp", phone)
	if stored == "" || stored != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}
	cache.DeleteOTP("whatsapp", phone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := database.Mongo.Collection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{"phone": phone, "provider": "whatsapp"}).Decode(&user)
	if err != nil {
		user = models.User{
			ID:         primitive.NewObjectID().Hex(),
			Name:       "WhatsApp user",
			Phone:      phone,
			Provider:   "whatsapp",
			ProviderID: phone,
			IsVerified: true,
			CreatedAt:  time.Now(),
		}
		if _, err := users.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation error"})
			return
		}
		log.Printf("✅ New WhatsApp account: %s", phone)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"phone":  user.Phone,
		"name":   user.Name,
	})
}
