// utils/email.go
package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-commerce-api/config"
	"go-commerce-api/models"
)

// EmailService handles sending transactional emails using SendGrid
type EmailService struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(cfg config.MailConfig) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail(es.fromName, es.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmation(toEmail, name string, order *models.Order) error {
	subject := "Order Confirmation - E-commerce Platform"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully and will be delivered by <strong>%s</strong>.<br><br>Total Amount: <strong>$%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with us!",
		name,
		order.ID.Hex(),
		order.DeliveryDate,
		order.TotalAmount,
		order.PaymentMethod,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendPaymentStatusUpdate notifies the user that the payment status of an
// order changed.
func (es *EmailService) SendPaymentStatusUpdate(toEmail, name string, order *models.Order) error {
	subject := "Payment Status Updated - E-commerce Platform"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>The payment status of your order (ID: %s) is now <strong>%s</strong>.<br><br>Thank you for shopping with us!",
		name,
		order.ID.Hex(),
		order.PaymentStatus,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderStatusUpdate notifies the user that an order moved to a new
// status.
func (es *EmailService) SendOrderStatusUpdate(toEmail, name string, order *models.Order) error {
	subject := "Order Status Updated - E-commerce Platform"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) status has been updated to <strong>%s</strong>.<br><br>Thank you for shopping with us!",
		name,
		order.ID.Hex(),
		order.Status,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
