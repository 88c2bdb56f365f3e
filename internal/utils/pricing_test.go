package utils

import (
	"testing"

	"swadbazaar-backend/internal/models"
)

func TestComputeSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "a", Price: 100, Quantity: 2},
		{ProductID: "b", Price: 50, Quantity: 1},
	}
	if got := ComputeSubtotal(items); got != 250 {
		t.Fatalf("expected subtotal 250, got %.2f", got)
	}
}

func TestComputeSubtotalEmpty(t *testing.T) {
	if got := ComputeSubtotal(nil); got != 0 {
		t.Fatalf("expected 0 for empty order, got %.2f", got)
	}
}

func TestComputeShippingFee(t *testing.T) {
	if got := ComputeShippingFee(350); got != FlatShippingFee {
		t.Fatalf("expected flat fee below threshold, got %.2f", got)
	}
	if got := ComputeShippingFee(FreeShippingThreshold); got != 0 {
		t.Fatalf("expected free shipping at threshold, got %.2f", got)
	}
	if got := ComputeShippingFee(1200); got != 0 {
		t.Fatalf("expected free shipping above threshold, got %.2f", got)
	}
}

func TestApplyCouponBelowMinOrder(t *testing.T) {
	coupon := models.Coupon{Code: "SAVE100", Type: "flat", Value: 100, MinOrder: 500, IsActive: true}

	result := ApplyCoupon(coupon, 400)
	if result.IsValid {
		t.Fatalf("expected coupon rejected below minimum order")
	}
	if result.ErrorMessage == "" {
		t.Fatalf("expected an error message on rejection")
	}
	if result.Discount != 0 {
		t.Fatalf("expected zero discount on rejection, got %.2f", result.Discount)
	}
}

func TestApplyCouponFlat(t *testing.T) {
	coupon := models.Coupon{Code: "SAVE100", Type: "flat", Value: 100, MinOrder: 500, IsActive: true}

	result := ApplyCoupon(coupon, 650)
	if !result.IsValid {
		t.Fatalf("expected coupon accepted: %s", result.ErrorMessage)
	}
	if result.Discount != 100 {
		t.Fatalf("expected flat discount 100, got %.2f", result.Discount)
	}
}

func TestApplyCouponFlatCappedAtSubtotal(t *testing.T) {
	coupon := models.Coupon{Code: "MEGA", Type: "flat", Value: 500, IsActive: true}

	result := ApplyCoupon(coupon, 300)
	if !result.IsValid {
		t.Fatalf("expected coupon accepted: %s", result.ErrorMessage)
	}
	if result.Discount != 300 {
		t.Fatalf("flat discount must not exceed subtotal, got %.2f", result.Discount)
	}
}

func TestApplyCouponPercent(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", Type: "percent", Value: 10, IsActive: true}

	result := ApplyCoupon(coupon, 650)
	if !result.IsValid {
		t.Fatalf("expected coupon accepted: %s", result.ErrorMessage)
	}
	if result.Discount != 65 {
		t.Fatalf("expected 10%% of 650 = 65, got %.2f", result.Discount)
	}
}

func TestApplyCouponInactive(t *testing.T) {
	coupon := models.Coupon{Code: "OLD", Type: "flat", Value: 50, IsActive: false}

	if result := ApplyCoupon(coupon, 1000); result.IsValid {
		t.Fatalf("expected inactive coupon rejected")
	}
}

func TestApplyCouponUnknownType(t *testing.T) {
	coupon := models.Coupon{Code: "WEIRD", Type: "bogo", Value: 1, IsActive: true}

	if result := ApplyCoupon(coupon, 1000); result.IsValid {
		t.Fatalf("expected unknown coupon type rejected")
	}
}

func TestToPaise(t *testing.T) {
	if got := ToPaise(299.50); got != 29950 {
		t.Fatalf("expected 29950 paise, got %d", got)
	}
	if got := ToPaise(0.1 + 0.2); got != 30 {
		t.Fatalf("expected rounding to 30 paise, got %d", got)
	}
}
