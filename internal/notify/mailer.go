package notify

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"seatbooker/internal/models"
)

// Mailer sends confirmation emails through Mailgun.
type Mailer struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailer(domain, apiKey, sender string) *Mailer {
	return &Mailer{Domain: domain, APIKey: apiKey, Sender: sender}
}

func (m *Mailer) SendBookingConfirmation(ctx context.Context, user *models.User, event *models.Event, bookingID string) error {
	subject := fmt.Sprintf("Booking confirmed: %s", event.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nyour seat for %s on %s at %s is booked.\nBooking reference: %s\n",
		user.Name, event.Title, event.Date.Format("2006-01-02"), event.Time, bookingID,
	)

	return m.send(ctx, user.Email, subject, text)
}

func (m *Mailer) SendPaymentConfirmation(ctx context.Context, user *models.User, event *models.Event, paymentID string) error {
	subject := fmt.Sprintf("Payment received: %s", event.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nwe received your payment for %s.\nPayment reference: %s\n",
		user.Name, event.Title, paymentID,
	)

	return m.send(ctx, user.Email, subject, text)
}

func (m *Mailer) send(ctx context.Context, to, subject, text string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, _, err := client.Send(c, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
