// Package booking implements the booking workflow: form validation, identity
// resolution, the free/paid branch, payment confirmation and finalization.
// All state lives in the injected store; the workflow itself is stateless and
// safe for concurrent use.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"seatbooker/internal/lib/logger/sl"
	"seatbooker/internal/models"
	"seatbooker/internal/payment"
	"seatbooker/internal/storage"
)

// FormInput is the raw booking form as submitted by a visitor.
type FormInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	StudentID string `json:"student_id" validate:"required"`
}

// NextStep tells the caller what the booking attempt needs next.
type NextStep string

const (
	// NextStepAwaitPayment means the booking is pending until the payment
	// boundary reports success for it.
	NextStepAwaitPayment NextStep = "AWAIT_PAYMENT"
	// NextStepFinalize means no payment is due and the booking can be
	// finalized right away.
	NextStepFinalize NextStep = "FINALIZE"
)

// SubmitResult is the outcome of a successful form submission.
type SubmitResult struct {
	User     *models.User    `json:"user"`
	Booking  *models.Booking `json:"booking"`
	NextStep NextStep        `json:"next_step"`
}

type Workflow struct {
	log      *slog.Logger
	store    storage.Store
	payments payment.Provider
	notifier Notifier
	validate *validator.Validate
}

// Notifier is the slice of the notification boundary the workflow uses.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, user *models.User, event *models.Event, bookingID string) error
	SendPaymentConfirmation(ctx context.Context, user *models.User, event *models.Event, paymentID string) error
}

func NewWorkflow(log *slog.Logger, store storage.Store, payments payment.Provider, notifier Notifier) *Workflow {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Workflow{
		log:      log,
		store:    store,
		payments: payments,
		notifier: notifier,
		validate: validate,
	}
}

// ResolveUser returns the user owning the draft's email, creating one when
// none exists. The store's unique email index linearizes concurrent calls:
// whichever insert lands first wins and the loser gets the winner's record.
func (w *Workflow) ResolveUser(draft models.User) (*models.User, error) {
	const op = "booking.ResolveUser"

	id, err := w.store.CreateUser(draft)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			existing, lookupErr := w.store.UserByEmail(draft.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("%s: %w", op, lookupErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := w.store.User(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Submit validates the form, resolves the visitor's identity and creates the
// booking record. No records are written when validation or the event lookup
// fails. The returned next step is NextStepAwaitPayment for paid events and
// NextStepFinalize for free ones.
func (w *Workflow) Submit(ctx context.Context, eventID string, in FormInput) (*SubmitResult, error) {
	const op = "booking.Submit"

	if err := w.validate.StructCtx(ctx, in); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) && len(validateErrs) > 0 {
			fe := validateErrs[0]
			return nil, fmt.Errorf("%s: %w", op, &ValidationError{
				Field:  fe.Field(),
				Reason: validationReason(fe),
			})
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event, err := w.store.Event(eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := w.ResolveUser(models.User{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		StudentID: in.StudentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b := models.Booking{
		UserID:        user.ID,
		EventID:       event.ID,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		Amount:        event.Price,
	}

	next := NextStepAwaitPayment
	if event.Free() {
		b.PaymentStatus = models.PaymentCompleted
		next = NextStepFinalize
	}

	id, err := w.store.CreateBooking(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := w.store.Booking(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("booking submitted",
		slog.String("booking_id", created.ID),
		slog.String("event_id", event.ID),
		slog.String("next_step", string(next)),
	)

	return &SubmitResult{User: user, Booking: created, NextStep: next}, nil
}

// Finalize commits the seat: it increments the event's participant counter,
// marks the booking completed and sends the booking confirmation. Calling it
// on an already completed booking is a no-op, so the counter can never move
// twice for one booking.
func (w *Workflow) Finalize(ctx context.Context, bookingID string) (*models.Booking, error) {
	const op = "booking.Finalize"

	b, err := w.store.Booking(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch b.Status {
	case models.BookingCompleted:
		return b, nil
	case models.BookingCancelled:
		return nil, fmt.Errorf("%s: booking %s is cancelled: %w", op, bookingID, ErrInvalidState)
	}

	event, err := w.store.Event(b.EventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := w.store.User(b.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = w.store.IncrementParticipants(event.ID); err != nil {
		if errors.Is(err, storage.ErrEventFull) {
			return nil, fmt.Errorf("%s: event %s: %w", op, event.ID, ErrCapacityExceeded)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	completed := models.BookingCompleted
	if err = w.store.UpdateBooking(b.ID, storage.BookingPatch{Status: &completed}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err = w.store.Booking(b.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Delivery problems must never unwind a committed booking.
	if err = w.notifier.SendBookingConfirmation(ctx, user, event, b.ID); err != nil {
		w.log.Error("failed to send booking confirmation", sl.Err(err),
			slog.String("booking_id", b.ID),
		)
	}

	w.log.Info("booking finalized", slog.String("booking_id", b.ID))

	return b, nil
}

// ConfirmPayment records a successful payment for a pending paid booking and
// finalizes it. It rejects unknown bookings, bookings whose payment is
// already completed, and empty payment ids.
func (w *Workflow) ConfirmPayment(ctx context.Context, bookingID, paymentID string) (*models.Booking, error) {
	const op = "booking.ConfirmPayment"

	if paymentID == "" {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{Field: "payment_id", Reason: "is required"})
	}

	b, err := w.store.Booking(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if b.Status != models.BookingPending || b.PaymentStatus != models.PaymentPending {
		return nil, fmt.Errorf("%s: booking %s: %w", op, bookingID, ErrInvalidState)
	}

	completed := models.PaymentCompleted
	err = w.store.UpdateBooking(b.ID, storage.BookingPatch{
		PaymentStatus: &completed,
		PaymentID:     &paymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	finalized, err := w.Finalize(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event, err := w.store.Event(finalized.EventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := w.store.User(finalized.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = w.notifier.SendPaymentConfirmation(ctx, user, event, paymentID); err != nil {
		w.log.Error("failed to send payment confirmation", sl.Err(err),
			slog.String("booking_id", finalized.ID),
		)
	}

	w.log.Info("payment confirmed",
		slog.String("booking_id", finalized.ID),
		slog.String("payment_id", paymentID),
	)

	return finalized, nil
}

// CollectPayment drives the payment boundary for a pending paid booking and
// blocks until the attempt resolves. On cancellation or failure the booking
// stays pending and can be retried via ConfirmPayment or left to expire.
func (w *Workflow) CollectPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	const op = "booking.CollectPayment"

	b, err := w.store.Booking(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if b.Status != models.BookingPending || b.PaymentStatus != models.PaymentPending {
		return nil, fmt.Errorf("%s: booking %s: %w", op, bookingID, ErrInvalidState)
	}

	outcome, err := w.payments.Request(ctx, b.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch outcome.Status {
	case payment.StatusSuccess:
		return w.ConfirmPayment(ctx, b.ID, outcome.PaymentID)
	case payment.StatusCancelled:
		w.log.Info("payment cancelled", slog.String("booking_id", b.ID))
		return nil, fmt.Errorf("%s: booking %s: %w", op, b.ID, ErrPaymentCancelled)
	default:
		w.log.Warn("payment failed",
			slog.String("booking_id", b.ID),
			slog.String("reason", outcome.Reason),
		)
		return nil, fmt.Errorf("%s: booking %s: %s: %w", op, b.ID, outcome.Reason, ErrPaymentFailed)
	}
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "email":
		return "is not a valid email"
	default:
		return "is invalid"
	}
}
