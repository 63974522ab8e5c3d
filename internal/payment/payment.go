// Package payment defines the boundary to the external payment capability.
// The booking workflow only ever sees an Outcome; how the money is actually
// collected is the provider's business.
package payment

import "context"

type OutcomeStatus string

const (
	StatusSuccess   OutcomeStatus = "success"
	StatusCancelled OutcomeStatus = "cancelled"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome is the result of one payment attempt. PaymentID is set only for
// StatusSuccess; Reason carries the provider's diagnostic for StatusFailed.
type Outcome struct {
	Status    OutcomeStatus
	PaymentID string
	Reason    string
}

func Success(paymentID string) Outcome {
	return Outcome{Status: StatusSuccess, PaymentID: paymentID}
}

func Cancelled() Outcome {
	return Outcome{Status: StatusCancelled}
}

func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// Provider requests collection of the given amount and blocks until the
// attempt resolves or ctx is cancelled. Cancellation of ctx counts as a
// cancelled outcome.
type Provider interface {
	Request(ctx context.Context, amount int64) (Outcome, error)
}
