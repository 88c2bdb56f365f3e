package utils

import (
	"fmt"
	"math"

	"swadbazaar-backend/internal/models"
)

// Shipping is free above the threshold, flat below it. Amounts in rupees.
const (
	FreeShippingThreshold = 499.0
	FlatShippingFee       = 49.0
)

// ComputeSubtotal sums price*quantity over the order lines.
func ComputeSubtotal(items []models.OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return Round2(subtotal)
}

// ComputeShippingFee returns the delivery charge for a given subtotal.
func ComputeShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// ApplyCoupon evaluates a coupon against a subtotal. The coupon is assumed
// to have been looked up already; unknown codes are handled by the caller.
func ApplyCoupon(coupon models.Coupon, subtotal float64) models.CouponValidation {
	if !coupon.IsActive {
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "This coupon is no longer active",
		}
	}

	if subtotal < coupon.MinOrder {
		return models.CouponValidation{
			IsValid: false,
			ErrorMessage: fmt.Sprintf("Minimum order of ₹%.0f required for coupon %s",
				coupon.MinOrder, coupon.Code),
		}
	}

	var discount float64
	switch coupon.Type {
	case "percent":
		discount = subtotal * coupon.Value / 100
	case "flat":
		discount = math.Min(coupon.Value, subtotal)
	default:
		return models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Unknown coupon type",
		}
	}

	return models.CouponValidation{
		IsValid:  true,
		Discount: Round2(discount),
		Type:     coupon.Type,
		Code:     coupon.Code,
	}
}

// Round2 rounds to two decimals, enough for rupee amounts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToPaise converts a rupee amount to the integer paise gateways expect.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
