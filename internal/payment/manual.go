package payment

import "context"

// Manual is a Provider resolved out-of-band: Request blocks until some other
// goroutine reports the outcome via Resolve. Used by flows where the
// confirmation arrives through a separate call (and by tests).
type Manual struct {
	outcomes chan Outcome
}

func NewManual() *Manual {
	return &Manual{outcomes: make(chan Outcome)}
}

func (m *Manual) Request(ctx context.Context, amount int64) (Outcome, error) {
	select {
	case out := <-m.outcomes:
		return out, nil
	case <-ctx.Done():
		return Cancelled(), nil
	}
}

// Resolve delivers the outcome of the pending request. Blocks until a
// Request is waiting or ctx is cancelled.
func (m *Manual) Resolve(ctx context.Context, out Outcome) error {
	select {
	case m.outcomes <- out:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
