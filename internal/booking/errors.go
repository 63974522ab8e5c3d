package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when an operation hits a booking in the
	// wrong state, e.g. confirming payment for an already completed booking.
	ErrInvalidState = errors.New("booking is in invalid state for this operation")

	// ErrCapacityExceeded is returned by finalize when the event is full.
	// The booking stays pending; the participant counter is untouched.
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	ErrPaymentCancelled = errors.New("payment cancelled")
	ErrPaymentFailed    = errors.New("payment failed")
)

// ValidationError reports the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}
