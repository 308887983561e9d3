package service

import "motorent/internal/domain"

// bookingTransitions defines the allowed booking status flow. Same-state
// updates are treated as no-ops by CanTransition.
var bookingTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:    {domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed:  {domain.BookingStatusInProgress, domain.BookingStatusCancelled},
	domain.BookingStatusInProgress: {domain.BookingStatusCompleted},
	domain.BookingStatusCompleted:  {},
	domain.BookingStatusCancelled:  {},
}

// paymentTransitions defines the allowed payment status flow.
var paymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentStatusPending:  {domain.PaymentStatusPaid},
	domain.PaymentStatusPaid:     {domain.PaymentStatusRefunded},
	domain.PaymentStatusRefunded: {},
}

// CanTransition reports whether from -> to is an allowed booking status change.
func CanTransition(from, to domain.BookingStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether from -> to is an allowed payment
// status change.
func CanTransitionPayment(from, to domain.PaymentStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := paymentTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidPaymentMethod validates a payment method string.
func ValidPaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodDigitalWallet:
		return domain.PaymentMethod(method), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
