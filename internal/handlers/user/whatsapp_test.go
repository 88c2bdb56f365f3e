package user

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{" +91 98765 43210 ", "+919876543210"},
		{"+1-415-5550123", "+14155550123"},
	}

	for _, tc := range cases {
		if got := normalizePhone(tc.in); got != tc.want {
			t.Fatalf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPhoneRegex(t *testing.T) {
	if !phoneRegex.MatchString("+919876543210") {
		t.Fatalf("valid E.164 number rejected")
	}
	if phoneRegex.MatchString("9876543210") {
		t.Fatalf("number without country code must be rejected")
	}
	if phoneRegex.MatchString("+91abc") {
		t.Fatalf("non-numeric number must be rejected")
	}
}
