package service

import "errors"

var (
	// ErrMissingBookingFields is returned when a booking request lacks a
	// required field (user, vehicle, or time window).
	ErrMissingBookingFields = errors.New("missing required fields: user_id, vehicle_id, start_date, end_date")

	// ErrInvalidBookingWindow is returned when a booking's end does not
	// strictly follow its start.
	ErrInvalidBookingWindow = errors.New("end date must be after start date")

	// ErrVehicleUnavailable is returned when the vehicle has an active
	// booking overlapping the requested window.
	ErrVehicleUnavailable = errors.New("vehicle is not available for the selected dates")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidStatusTransition is returned when a status update is not
	// permitted by the booking transition table.
	ErrInvalidStatusTransition = errors.New("status transition not allowed")

	// ErrInvalidPaymentTransition is returned when a payment status update
	// is not permitted by the payment transition table.
	ErrInvalidPaymentTransition = errors.New("payment status transition not allowed")

	// ErrInvalidPaymentAmount is returned when a payment amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentMethod is returned when a payment method is unrecognized.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrMissingDeliveryFields is returned when a delivery request lacks a
	// required field.
	ErrMissingDeliveryFields = errors.New("missing required delivery fields")

	// ErrDeliveryExists is returned when the booking already has a delivery.
	ErrDeliveryExists = errors.New("delivery already exists for this booking")

	// ErrInvalidDeliveryID is returned when a delivery ID is empty.
	ErrInvalidDeliveryID = errors.New("invalid delivery id")

	// ErrInvalidDeliveryStatus is returned when a delivery status value is
	// unrecognized.
	ErrInvalidDeliveryStatus = errors.New("invalid delivery status")

	// ErrInvalidTrackingNumber is returned when a tracking number is empty.
	ErrInvalidTrackingNumber = errors.New("invalid tracking number")

	// ErrMissingCredentials is returned when email or password is absent.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrBookingLocked is returned when another booking attempt holds the
	// vehicle lock.
	ErrBookingLocked = errors.New("vehicle is being booked by another request")

	// ErrInvalidToken is returned when a token is malformed or its signature
	// does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has passed its expiry.
	ErrExpiredToken = errors.New("token expired")
)
