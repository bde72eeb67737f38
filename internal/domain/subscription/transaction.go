package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// DefaultPaymentMethod is recorded when the caller does not name one.
const DefaultPaymentMethod = "credit_card"

// Transaction is a payment record tied to a subscription. Reference is the
// externally visible transaction_id and is unique.
type Transaction struct {
	ID             uint
	SubscriptionID uint
	Amount         shared.Hundredths
	PaymentDate    time.Time
	PaymentMethod  string
	Reference      string
	Status         PaymentStatus
	CreatedAt      time.Time
}

func NewTransaction(subscriptionID uint, amount shared.Hundredths, method, reference string, status PaymentStatus) (*Transaction, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("transaction reference is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, status)
	}
	if method = strings.TrimSpace(method); method == "" {
		method = DefaultPaymentMethod
	}

	now := time.Now().UTC()
	return &Transaction{
		SubscriptionID: subscriptionID,
		Amount:         amount,
		PaymentDate:    now,
		PaymentMethod:  method,
		Reference:      reference,
		Status:         status,
		CreatedAt:      now,
	}, nil
}
