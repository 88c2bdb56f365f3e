package utils

import "testing"

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateOTP()
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("codes should vary across generations")
	}
}
