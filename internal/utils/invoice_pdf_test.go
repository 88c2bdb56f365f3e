package utils

import (
	"strings"
	"testing"
)

func TestGenerateUPIQR(t *testing.T) {
	qr, err := GenerateUPIQR("swadbazaar@ybl", "SwadBazaar", "INV-123", 499.50)
	if err != nil {
		t.Fatalf("QR generation failed: %v", err)
	}
	if !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Fatalf("expected a PNG data URL")
	}
}
