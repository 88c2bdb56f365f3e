package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// SendWhatsAppOTP delivers a verification code over the WhatsApp Business
// API. The provider endpoint and key come from the environment so staging
// can point at a sandbox.
func SendWhatsAppOTP(phone, code string) error {
	apiURL := os.Getenv("WHATSAPP_API_URL")
	apiKey := os.Getenv("WHATSAPP_API_KEY")
	if apiURL == "" || apiKey == "" {
		return fmt.Errorf("WhatsApp API not configured")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "template",
		"template": map[string]interface{}{
			"name":     "otp_login",
			"language": map[string]string{"code": "en"},
			"components": []map[string]interface{}{
				{
					"type": "body",
					"parameters": []map[string]string{
						{"type": "text", "text": code},
					},
				},
			},
		},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("WhatsApp send error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("WhatsApp API returned status %d: %v", resp.StatusCode, e)
	}

	log.Println("📱 WhatsApp OTP sent to", phone)
	return nil
}
