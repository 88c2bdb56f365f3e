package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"swadbazaar-backend/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	OTPMaxRequests   = 3
	APIMaxRequests   = 100 // per minute for general endpoints

	LoginCooldown = 15 * time.Minute
	OTPCooldown   = 10 * time.Minute
	APICooldown   = 1 * time.Minute
)

// LoginRateLimit throttles login attempts per email.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Put the body back for the handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many failed attempts. Locked for %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusUnauthorized {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, LoginCooldown)
		} else if c.Writer.Status() == http.StatusOK {
			database.Redis.Del(ctx, key)
			database.Redis.Del(ctx, cooldownKey)
		}
	}
}

// OTPRateLimit throttles OTP sends per client IP. Covers both the email and
// the WhatsApp flow.
func OTPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "otp_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= OTPMaxRequests {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many OTP requests. Try again in %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, OTPCooldown)
		pipe.Exec(ctx)

		c.Next()
	}
}

// APIRateLimit throttles requests per IP across the public API.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "api_requests:" + ip

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Try again in 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests-1))

		c.Next()
	}
}
