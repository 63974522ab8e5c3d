package models

import "time"

// BookingStatus tracks the lifecycle of a booking attempt. A booking is
// finalized (seat counted, confirmation sent) only when the status is
// completed; payment state is tracked separately in PaymentStatus.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentStatus tracks whether money was collected for a booking.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	EventID       string        `json:"event_id"`
	CreatedAt     time.Time     `json:"created_at"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Amount        int64         `json:"amount"`
	PaymentID     string        `json:"payment_id,omitempty"`
}
