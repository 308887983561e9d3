package repository

import (
	"context"
	"time"

	"motorent/internal/domain"
)

// BookingFilter narrows a user's booking listing.
type BookingFilter struct {
	UserID string
	Status domain.BookingStatus // empty means any status
	Limit  int
	Offset int
}

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetDetailByID retrieves a booking with its user, vehicle, vendor,
	// optional driver and optional delivery eagerly resolved.
	GetDetailByID(ctx context.Context, id string) (*domain.BookingDetail, error)

	// FindConflicting returns bookings for the vehicle whose windows overlap
	// [start, end) under the half-open rule and whose status is confirmed or
	// in_progress. excludeID, when non-empty, is left out of the result.
	FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) ([]*domain.Booking, error)

	// ListByUser returns a page of a user's bookings, newest first, with
	// vehicle, vendor and driver resolved.
	ListByUser(ctx context.Context, filter BookingFilter) ([]*domain.BookingDetail, error)

	// CountByUser returns the total number of bookings matching the filter,
	// ignoring Limit and Offset.
	CountByUser(ctx context.Context, filter BookingFilter) (int, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// UpdateTotalAmount sets the booking's total amount.
	UpdateTotalAmount(ctx context.Context, id string, total float64) error
}
