package order

import (
	"errors"
	"fmt"
)

// Status is the fulfilment lifecycle of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus is the manual payment-verification lifecycle of an order.
type PaymentStatus string

const (
	PaymentVerificationSubmitted PaymentStatus = "verification_submitted"
	PaymentVerified              PaymentStatus = "verified"
	PaymentFailed                PaymentStatus = "failed"
	PaymentRefunded              PaymentStatus = "refunded"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrProofNotFound        = errors.New("payment proof not found")
	ErrInvalidStatus        = errors.New("invalid order status transition")
	ErrInvalidPaymentStatus = errors.New("invalid payment status transition")
	ErrOrderCompleted       = errors.New("order is already completed")
	ErrOrderCancelled       = errors.New("order is already cancelled")
)

// validStatusTransitions defines allowed fulfilment transitions
var validStatusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted, StatusCancelled},
	StatusCompleted:  {}, // terminal state
	StatusCancelled:  {}, // terminal state
}

// validPaymentTransitions defines allowed payment-verification transitions
var validPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentVerificationSubmitted: {PaymentVerified, PaymentFailed},
	PaymentVerified:              {PaymentRefunded},
	PaymentFailed:                {},
	PaymentRefunded:              {},
}

// CanTransitionTo checks if the order status can move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validStatusTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// CanTransitionTo checks if the payment status can move to the target status
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	allowed, exists := validPaymentTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// transitionError returns an appropriate error for an invalid status transition
func transitionError(current, target Status) error {
	switch current {
	case StatusCancelled:
		return ErrOrderCancelled
	case StatusCompleted:
		return ErrOrderCompleted
	default:
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, current, target)
	}
}
