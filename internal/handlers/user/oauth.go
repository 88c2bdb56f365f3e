package user

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
	"swadbazaar-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== GOOGLE SIGN-IN ==================

// BeginAuth redirects the browser to the provider's consent screen.
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No provider specified"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth completes the OAuth flow, finds or creates the account
// and redirects to the frontend with a session token.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No provider specified"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := findOrCreateOAuthUser(gothUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation error"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID, "email": user.Email})
		return
	}

	redirect := frontend + "/auth/callback?token=" + url.QueryEscape(token)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func findOrCreateOAuthUser(gothUser goth.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := database.Mongo.Collection("users")
	email := strings.ToLower(gothUser.Email)

	var user models.User
	err := users.FindOne(ctx, bson.M{
		"provider":   gothUser.Provider,
		"providerId": gothUser.UserID,
	}).Decode(&user)
	if err == nil {
		return user, nil
	}

	// a local account with the same email gets linked instead of duplicated
	err = users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		_, err = users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
			"provider":   gothUser.Provider,
			"providerId": gothUser.UserID,
			"isVerified": true,
		}})
		user.Provider = gothUser.Provider
		user.ProviderID = gothUser.UserID
		user.IsVerified = true
		return user, err
	}

	user = models.User{
		ID:         primitive.NewObjectID().Hex(),
		Name:       gothUser.Name,
		Email:      email,
		Provider:   gothUser.Provider,
		ProviderID: gothUser.UserID,
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
	if _, err := users.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}

	log.Printf("✅ New %s account: %s", gothUser.Provider, email)
	return user, nil
}
