// Package notify delivers confirmation emails after a booking is finalized.
// Delivery failures are the caller's to log; they never affect booking state.
package notify

import (
	"context"
	"log/slog"

	"seatbooker/internal/models"
)

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, user *models.User, event *models.Event, bookingID string) error
	SendPaymentConfirmation(ctx context.Context, user *models.User, event *models.Event, paymentID string) error
}

// LogNotifier writes notifications to the log instead of sending email.
// Used when no mailer is configured (local runs, tests).
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendBookingConfirmation(_ context.Context, user *models.User, event *models.Event, bookingID string) error {
	n.log.Info("booking confirmation",
		slog.String("email", user.Email),
		slog.String("event", event.Title),
		slog.String("booking_id", bookingID),
	)

	return nil
}

func (n *LogNotifier) SendPaymentConfirmation(_ context.Context, user *models.User, event *models.Event, paymentID string) error {
	n.log.Info("payment confirmation",
		slog.String("email", user.Email),
		slog.String("event", event.Title),
		slog.String("payment_id", paymentID),
	)

	return nil
}
