package utils

import (
	"os"
	"time"

	"swadbazaar-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues a 24h session token. There is no refresh or revocation.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
