package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"
)

const shiprocketBase = "https://apiv2.shiprocket.in/v1/external"

// Shiprocket tokens are valid for 10 days; cache for 9 to stay clear of the
// edge.
const shiprocketTokenTTL = 9 * 24 * time.Hour

type ShipmentResult struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	AWBCode    string `json:"awb_code"`
	Status     string `json:"status"`
}

// shiprocketToken logs in against the aggregator and caches the bearer token
// in Redis.
func shiprocketToken() (string, error) {
	ctx := context.Background()

	if token, err := database.Redis.Get(ctx, "shiprocket:token").Result(); err == nil && token != "" {
		return token, nil
	}

	body, _ := json.Marshal(map[string]string{
		"email":    os.Getenv("SHIPROCKET_EMAIL"),
		"password": os.Getenv("SHIPROCKET_PASSWORD"),
	})

	resp, err := http.Post(shiprocketBase+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("shiprocket login error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shiprocket login failed with status %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("shiprocket returned an empty token")
	}

	database.Redis.Set(ctx, "shiprocket:token", loginResp.Token, shiprocketTokenTTL)
	log.Println("✅ Shiprocket token refreshed")

	return loginResp.Token, nil
}

// CreateShipment forwards an order to Shiprocket for fulfilment and returns
// the tracking identifiers.
func CreateShipment(order models.Order, userEmail string) (*ShipmentResult, error) {
	token, err := shiprocketToken()
	if err != nil {
		return nil, err
	}

	paymentMethod := "Prepaid"
	if order.PaymentMethod == "cod" {
		paymentMethod = "COD"
	}

	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		sku := item.ProductID
		if item.Variant != "" {
			sku = sku + "-" + item.Variant
		}
		items = append(items, map[string]interface{}{
			"name":          item.Title,
			"sku":           sku,
			"units":         item.Quantity,
			"selling_price": item.Price,
		})
	}

	payload := map[string]interface{}{
		"order_id":              order.ID.Hex(),
		"order_date":            order.CreatedAt.Format("2006-01-02 15:04"),
		"pickup_location":       os.Getenv("SHIPROCKET_PICKUP_LOCATION"),
		"billing_customer_name": order.ShippingAddress.FullName,
		"billing_last_name":     "",
		"billing_address":       order.ShippingAddress.Line1,
		"billing_address_2":     order.ShippingAddress.Line2,
		"billing_city":          order.ShippingAddress.City,
		"billing_pincode":       order.ShippingAddress.PostalCode,
		"billing_state":         order.ShippingAddress.State,
		"billing_country":       "India",
		"billing_email":         userEmail,
		"billing_phone":         order.ShippingAddress.Phone,
		"shipping_is_billing":   true,
		"order_items":           items,
		"payment_method":        paymentMethod,
		"sub_total":             order.Amount,
		"length":                15,
		"breadth":               12,
		"height":                10,
		"weight":                0.5,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, shiprocketBase+"/orders/create/adhoc", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shiprocket order error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("shiprocket rejected the order (status %d): %v", resp.StatusCode, e)
	}

	var result ShipmentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	log.Printf("📦 Shiprocket shipment created: order=%d shipment=%d awb=%s", result.OrderID, result.ShipmentID, result.AWBCode)
	return &result, nil
}
