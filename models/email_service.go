package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order %s confirmed - Intershop", order.OrderNumber))

	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(
			`<tr><td>%s</td><td>%d</td><td>%s</td></tr>`,
			item.Title, item.Quantity, formatPrice(item.PriceAtPurchase),
		)
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .total { font-size: 20px; font-weight: bold; color: #2563eb; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 8px; border-bottom: 1px solid #eee; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Thank you for your order!</h2>
        <p>Order number: <strong>%s</strong></p>
        <table>%s</table>
        <p class="total">Total: %s</p>
        <div class="footer">Intershop</div>
    </div>
</body>
</html>`, order.OrderNumber, rows, formatPrice(order.TotalSum))

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

func formatPrice(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
