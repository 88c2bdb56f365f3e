package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"swadbazaar-backend/internal/config"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY not set, card payments via Stripe disabled")
	} else {
		log.Println("✅ Stripe initialized")
	}

	database.ConnectDatabases()

	initOAuthProviders()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 SwadBazaar server listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server error:", err)
	}
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET not set, OAuth sign-in disabled")
		return
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   os.Getenv("GIN_MODE") == "release",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Println("⚠️ Google OAuth not configured")
		return
	}

	goth.UseProviders(google.New(clientID, clientSecret, baseURL+"/api/auth/google/callback"))
	log.Println("✅ Google OAuth enabled")
}
