package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// all origins allowed; CORS is handled at the router level
		return true
	},
}

// CartWebSocket streams cart changes to the client so two open tabs stay in
// sync. Change notifications arrive over Redis pub/sub; the fresh cart is
// read back from Mongo.
func CartWebSocket(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Cart sync active",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			var cart models.Cart
			database.Mongo.Collection("carts").
				FindOne(ctx, bson.M{"userId": userID}).
				Decode(&cart)
			if cart.Items == nil {
				cart.Items = []models.CartItem{}
			}

			total := 0.0
			for _, item := range cart.Items {
				total += item.Price * float64(item.Quantity)
			}

			response := map[string]interface{}{
				"type":  "cart_updated",
				"items": cart.Items,
				"total": total,
				"count": len(cart.Items),
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ WebSocket write error: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// keepalive ping
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
