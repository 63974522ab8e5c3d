// Package storage defines the record store contract shared by the in-memory
// and PostgreSQL implementations, together with the sentinel errors higher
// layers branch on.
package storage

import (
	"errors"
	"strings"
	"time"

	"seatbooker/internal/models"
)

// NormalizeEmail is the single case policy for the email identity key:
// lookups and inserts both go through it, so dedup is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrEmailTaken is returned by CreateUser when another user already
	// holds the normalized email. Callers resolve it with UserByEmail.
	ErrEmailTaken = errors.New("email already taken")

	// ErrEventFull is returned by IncrementParticipants when the event is
	// at capacity.
	ErrEventFull = errors.New("no available seats")
)

// EventPatch is a partial update of an event. Only non-nil fields are merged.
type EventPatch struct {
	Title               *string
	Date                *time.Time
	Time                *string
	Price               *int64
	MaxParticipants     *int
	CurrentParticipants *int
}

// BookingPatch is a partial update of a booking. Only non-nil fields are merged.
type BookingPatch struct {
	Status        *models.BookingStatus
	PaymentStatus *models.PaymentStatus
	PaymentID     *string
}

// Store is the record store for users, events and bookings. Every write is
// visible to subsequent reads from any goroutine once the call returns.
type Store interface {
	CreateUser(u models.User) (string, error)
	User(id string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)

	CreateEvent(e models.Event) (string, error)
	Event(id string) (*models.Event, error)
	Events() ([]models.Event, error)
	UpdateEvent(id string, p EventPatch) error

	// IncrementParticipants atomically adds one participant and returns the
	// new count, refusing with ErrEventFull once max_participants is reached.
	IncrementParticipants(id string) (int, error)

	CreateBooking(b models.Booking) (string, error)
	Booking(id string) (*models.Booking, error)
	BookingsByEvent(eventID string) ([]models.Booking, error)
	UpdateBooking(id string, p BookingPatch) error

	// CancelExpiredBookings cancels pending bookings older than olderThan
	// and returns how many were cancelled.
	CancelExpiredBookings(olderThan time.Duration) (int, error)
}
