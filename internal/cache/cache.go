package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"swadbazaar-backend/internal/database"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

const (
	OTPTTL          = 10 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// --- OTPs ---
//
// OTP codes for both the email and the WhatsApp flow live in Redis with a
// TTL; the document store never sees them.

func otpKey(channel, recipient string) string {
	return fmt.Sprintf("otp:%s:%s", channel, recipient)
}

// StoreOTP stores a verification code for a recipient. channel is "email"
// or "whatsapp".
func StoreOTP(channel, recipient, code string) error {
	return database.Redis.Set(ctx, otpKey(channel, recipient), code, OTPTTL).Err()
}

// GetOTP returns the stored code, or "" when expired or never sent.
func GetOTP(channel, recipient string) string {
	code, err := database.Redis.Get(ctx, otpKey(channel, recipient)).Result()
	if err != nil {
		return ""
	}
	return code
}

// DeleteOTP consumes a code after successful verification.
func DeleteOTP(channel, recipient string) {
	database.Redis.Del(ctx, otpKey(channel, recipient))
}

// --- Generic cache ---

func SetCache(key string, value interface{}, duration time.Duration) error {
	return database.Redis.Set(ctx, key, value, duration).Err()
}

func GetCache(key string) (string, error) {
	return database.Redis.Get(ctx, key).Result()
}

func DeleteCache(key string) error {
	return database.Redis.Del(ctx, key).Err()
}

// InvalidateProductCache drops the cached product list after admin writes.
func InvalidateProductCache() {
	if err := database.Redis.Del(ctx, "products:all").Err(); err != nil {
		log.Printf("⚠️ Product cache invalidation error: %v", err)
	}
}

// --- Cart change notifications ---

// PublishCartEvent notifies websocket subscribers that a cart changed.
// event is "updated" or "cleared".
func PublishCartEvent(userID, event string) {
	if err := database.Redis.Publish(ctx, "cart:"+userID, event).Err(); err != nil {
		log.Printf("⚠️ Cart publish error: %v", err)
	}
}

// --- Rate limiting ---

func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func GetRateLimit(key string) (int64, error) {
	val, err := database.Redis.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
