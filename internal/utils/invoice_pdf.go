package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"swadbazaar-backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateUPIQR builds a UPI intent QR as a base64 data URL ready for an
// <img src="...">.
func GenerateUPIQR(vpa, payeeName, ref string, amount float64) (string, error) {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tr", ref)

	png, err := qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF renders the invoice HTML to PDF with a headless browser.
func GenerateInvoicePDF(order models.Order, userEmail string) ([]byte, error) {
	vpa := os.Getenv("UPI_VPA")
	if vpa == "" {
		vpa = "swadbazaar@ybl"
	}
	payeeName := os.Getenv("UPI_PAYEE_NAME")
	if payeeName == "" {
		payeeName = "SwadBazaar Foods"
	}

	ref := "INV-" + order.ID.Hex()
	qrBase64, err := GenerateUPIQR(vpa, payeeName, ref, order.Amount)
	if err != nil {
		return nil, fmt.Errorf("UPI QR generation error: %v", err)
	}

	html := generateInvoiceHTML(order, userEmail, ref, qrBase64)
	return renderHTMLToPDF(html)
}

func renderHTMLToPDF(html string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// keep the headless browser from hanging indefinitely
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func generateInvoiceHTML(order models.Order, userEmail, ref, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		variant := ""
		if item.Variant != "" {
			variant = " (" + item.Variant + ")"
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 6px; border-bottom: 1px solid #eee;">%s%s</td>
				<td style="padding: 6px; border-bottom: 1px solid #eee;">%d</td>
				<td style="padding: 6px; border-bottom: 1px solid #eee;">₹%.2f</td>
				<td style="padding: 6px; border-bottom: 1px solid #eee;">₹%.2f</td>
			</tr>`, item.Title, variant, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	payBlock := ""
	if order.PaymentStatus != models.PaymentCompleted {
		payBlock = fmt.Sprintf(`
		<div style="text-align: center; margin-top: 24px;">
			<p><strong>Pay via UPI</strong> — scan with any UPI app</p>
			<img src="%s" alt="UPI QR" width="180" height="180">
			<p style="color: #888; font-size: 11px;">Reference: %s</p>
		</div>`, qrBase64, ref)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Invoice %s</title></head>
<body style="font-family: Arial, sans-serif; padding: 32px; color: #222;">
	<h1 style="color: #d35400;">SwadBazaar</h1>
	<p style="color: #666;">Invoice %s · %s</p>
	<p>
		Billed to: %s (%s)<br>
		%s, %s<br>
		%s, %s %s
	</p>
	<table style="width: 100%%; border-collapse: collapse; margin: 16px 0;">
		<thead>
			<tr style="text-align: left; border-bottom: 2px solid #333;">
				<th style="padding: 6px;">Product</th>
				<th style="padding: 6px;">Qty</th>
				<th style="padding: 6px;">Unit</th>
				<th style="padding: 6px;">Total</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p style="text-align: right;">
		Subtotal: ₹%.2f<br>
		Discount: -₹%.2f<br>
		Shipping: ₹%.2f<br>
		<strong>Grand total: ₹%.2f</strong>
	</p>
	%s
</body>
</html>`,
		ref, ref, order.CreatedAt.Format("02 Jan 2006"),
		order.ShippingAddress.FullName, userEmail,
		order.ShippingAddress.Line1, order.ShippingAddress.Line2,
		order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.PostalCode,
		itemsHTML,
		order.Subtotal, order.Discount, order.ShippingFee, order.Amount,
		payBlock)
}
