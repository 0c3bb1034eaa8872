package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an email over SMTP using gomail. When SMTP is not
// configured the send is skipped; notifications are best-effort and never
// block an order or refund path.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = username
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// NotifyOrderPlaced emails the store operator about a new order.
func NotifyOrderPlaced(storeEmail string, orderID uint, total float64, paymentMethod string) {
	go func() {
		body := fmt.Sprintf(
			"<p>New order <b>#%d</b> placed.</p><p>Total: NPR %.2f<br>Payment method: %s</p>",
			orderID, total, paymentMethod,
		)
		if err := SendEmail(storeEmail, fmt.Sprintf("New order #%d", orderID), body); err != nil {
			LogError("Order notification email failed for order %d: %v", orderID, err)
		}
	}()
}

// NotifyRefundRequested emails the store operator about a refund request.
func NotifyRefundRequested(storeEmail string, orderID uint, reason string) {
	go func() {
		body := fmt.Sprintf(
			"<p>Refund requested for order <b>#%d</b>.</p><p>Reason: %s</p>",
			orderID, reason,
		)
		if err := SendEmail(storeEmail, fmt.Sprintf("Refund request for order #%d", orderID), body); err != nil {
			LogError("Refund notification email failed for order %d: %v", orderID, err)
		}
	}()
}
