package user

import (
	"context"
	"net/http"
	"time"

	"swadbazaar-backend/internal/cache"
	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Carts are keyed by userId, which is either an account id or a
// client-generated guest id. No auth gate here so guest carts work.

func loadCart(ctx context.Context, userID string) models.Cart {
	var cart models.Cart
	database.Mongo.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	cart.UserID = userID
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart
}

func saveCart(ctx context.Context, cart models.Cart) error {
	_, err := database.Mongo.Collection("carts").UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{"$set": bson.M{"items": cart.Items, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true))
	return err
}

// mergeItem adds a line to the cart, summing quantities when the same
// product+variant is already present.
func mergeItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].Variant == item.Variant {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// removeItem filters a product out. Removing an absent product is a no-op.
func removeItem(items []models.CartItem, productID string) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// setQuantity overwrites a line's quantity.
func setQuantity(items []models.CartItem, productID string, qty int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			break
		}
	}
	return items
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	var input struct {
		UserID    string  `json:"userId" binding:"required"`
		ProductID string  `json:"productId" binding:"required"`
		Quantity  int     `json:"qty"`
		Variant   string  `json:"variant"`
		Title     string  `json:"title"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart := loadCart(ctx, input.UserID)
	cart.Items = mergeItem(cart.Items, models.CartItem{
		ProductID: input.ProductID,
		Title:     input.Title,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Variant:   input.Variant,
		Image:     input.Image,
	})

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.PublishCartEvent(input.UserID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart",
		"items":   cart.Items,
	})
}

//
// GET /api/cart/:userId
//
func GetCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart := loadCart(ctx, c.Param("userId"))
	c.JSON(http.StatusOK, cart)
}

//
// ❌ DELETE /api/cart/remove/:userId/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.Param("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart := loadCart(ctx, userID)
	cart.Items = removeItem(cart.Items, c.Param("productId"))

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.PublishCartEvent(userID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from cart",
		"items":   cart.Items,
	})
}

//
// PUT /api/cart/update
//
func UpdateQuantity(c *gin.Context) {
	var input struct {
		UserID    string `json:"userId" binding:"required"`
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"qty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart := loadCart(ctx, input.UserID)
	cart.Items = setQuantity(cart.Items, input.ProductID, input.Quantity)

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.PublishCartEvent(input.UserID, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"items":   cart.Items,
	})
}

//
// 🧹 POST /api/cart/clear/:userId
//
func ClearCart(c *gin.Context) {
	userID := c.Param("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.Mongo.Collection("carts").UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart clear error"})
		return
	}

	cache.PublishCartEvent(userID, "cleared")

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
