package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrMissingReseller         = errors.New("reseller subscriptions require a reseller")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status")
	// ErrStatusChanged means the stored row no longer has the status the
	// entity was loaded with.
	ErrStatusChanged = errors.New("subscription status changed concurrently")
)

func errTransition(from, to Status) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
