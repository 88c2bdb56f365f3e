package utils

import (
	"bytes"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendEmail sends an HTML email, optionally with a PDF invoice attached.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@swadbazaar.in"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("invoice_swadbazaar.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// SendOTPEmail sends the 6-digit verification code.
func SendOTPEmail(to, code string) error {
	html := GenerateOTPEmailHTML(code)
	return SendEmail(to, "Your SwadBazaar verification code", html, nil)
}
