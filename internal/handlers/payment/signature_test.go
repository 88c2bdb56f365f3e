package payment

import (
	"strings"
	"testing"
)

func TestVerifyRazorpaySignature(t *testing.T) {
	orderID, paymentID, secret := "order_abc", "pay_xyz", "test_secret"

	good := razorpaySignature(orderID, paymentID, secret)
	if len(good) != 64 {
		t.Fatalf("expected sha256 hex signature, got length %d", len(good))
	}
	if !VerifyRazorpaySignature(orderID, paymentID, good, secret) {
		t.Fatalf("correct signature must verify")
	}

	if VerifyRazorpaySignature(orderID, paymentID, good, "wrong_secret") {
		t.Fatalf("signature must fail with the wrong secret")
	}
	if VerifyRazorpaySignature(orderID, "pay_other", good, secret) {
		t.Fatalf("signature must fail for a different payment id")
	}
	if VerifyRazorpaySignature(orderID, paymentID, good[:62]+"zz", secret) {
		t.Fatalf("tampered signature must fail")
	}
}

func TestPhonePePayChecksumDeterministic(t *testing.T) {
	payload := "eyJtZXJjaGFudElkIjoiTTEifQ=="

	a := PhonePePayChecksum(payload, "salt-key", "1")
	b := PhonePePayChecksum(payload, "salt-key", "1")
	if a != b {
		t.Fatalf("checksum must be deterministic: %s vs %s", a, b)
	}
	if !strings.HasSuffix(a, "###1") {
		t.Fatalf("checksum must end with the salt index, got %s", a)
	}
	if len(a) != 64+len("###1") {
		t.Fatalf("expected sha256 hex plus suffix, got length %d", len(a))
	}

	if PhonePePayChecksum(payload, "other-salt", "1") == a {
		t.Fatalf("different salt keys must produce different checksums")
	}
}

func TestPhonePeStatusChecksum(t *testing.T) {
	a := PhonePeStatusChecksum("M1", "MT123", "salt-key", "2")
	b := PhonePeStatusChecksum("M1", "MT123", "salt-key", "2")
	if a != b {
		t.Fatalf("status checksum must be deterministic")
	}
	if !strings.HasSuffix(a, "###2") {
		t.Fatalf("status checksum must end with the salt index, got %s", a)
	}
	if PhonePeStatusChecksum("M1", "MT124", "salt-key", "2") == a {
		t.Fatalf("different transactions must produce different checksums")
	}
}
