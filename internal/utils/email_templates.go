package utils

import (
	"fmt"
	"log"

	"swadbazaar-backend/internal/models"
)

// GenerateOTPEmailHTML renders the verification-code email.
func GenerateOTPEmailHTML(code string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Verification code</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 480px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #333;">Verify your email</h2>
		<p>Use this code to finish signing in to SwadBazaar. It expires in 10 minutes.</p>
		<p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; color: #d35400;">%s</p>
		<p style="color: #888; font-size: 12px;">If you did not request this, you can ignore this email.</p>
	</div>
</body>
</html>`, code)
}

// GenerateOrderConfirmationHTML renders the order confirmation email.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		variant := ""
		if item.Variant != "" {
			variant = " (" + item.Variant + ")"
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">₹%.2f</td>
			</tr>`, item.Title, variant, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	discountRow := ""
	if order.Discount > 0 {
		discountRow = fmt.Sprintf(`
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right;">Discount (%s):</td>
					<td style="padding: 8px; color: #27ae60;">-₹%.2f</td>
				</tr>`, order.CouponCode, order.Discount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order!</h2>
		<p>Hi %s,</p>
		<p>Your order <strong>#%s</strong> has been placed and is being processed.</p>

		<h3>Order details</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right;">Subtotal:</td>
					<td style="padding: 8px;">₹%.2f</td>
				</tr>%s
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right;">Shipping:</td>
					<td style="padding: 8px;">₹%.2f</td>
				</tr>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Warm regards,<br>
			<strong>Team SwadBazaar</strong>
		</p>
	</div>
</body>
</html>`, order.ShippingAddress.FullName, order.ID.Hex(), itemsHTML, order.Subtotal, discountRow, order.ShippingFee, order.Amount)
}

// SendOrderStatusEmail notifies the customer of a status change.
func SendOrderStatusEmail(order models.Order, userEmail, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	if err := SendEmail(userEmail, subject, html, nil); err != nil {
		log.Printf("❌ Status email error: %v", err)
		return err
	}

	log.Printf("📧 Status email sent: %s → %s", newStatus, userEmail)
	return nil
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.OrderShipped:
		return "📦 Your order is on its way - SwadBazaar"
	case models.OrderDelivered:
		return "🎉 Your order has been delivered - SwadBazaar"
	case models.OrderCancelled:
		return "❌ Your order was cancelled - SwadBazaar"
	default:
		return "📋 Update on your order - SwadBazaar"
	}
}

func getStatusMessage(status string) string {
	switch status {
	case models.OrderShipped:
		return "Your order has been handed to our courier partner. You can track it with the AWB number below."
	case models.OrderDelivered:
		return "Your order has been delivered. We hope you enjoy it!"
	case models.OrderCancelled:
		return "Your order has been cancelled. If you already paid, the refund will reach you in 5-7 business days."
	default:
		return "Your order status has been updated."
	}
}

func generateStatusEmailHTML(order models.Order, status string) string {
	tracking := ""
	if order.AWBCode != "" {
		tracking = fmt.Sprintf(`<p>Tracking number: <strong>%s</strong></p>`, order.AWBCode)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order update</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Order #%s: %s</h2>
		<p>%s</p>
		%s
		<p style="margin-top: 30px; color: #555;">
			Warm regards,<br>
			<strong>Team SwadBazaar</strong>
		</p>
	</div>
</body>
</html>`, order.ID.Hex(), status, getStatusMessage(status), tracking)
}
