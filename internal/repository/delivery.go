package repository

import (
	"context"

	"motorent/internal/domain"
)

// DeliveryRepository defines the persistence operations for deliveries.
type DeliveryRepository interface {
	// Create persists a new delivery.
	Create(ctx context.Context, delivery *domain.Delivery) error

	// GetByID retrieves a delivery by ID.
	GetByID(ctx context.Context, id string) (*domain.Delivery, error)

	// GetByTrackingNumber retrieves a delivery by its tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Delivery, error)

	// GetByBookingID retrieves the delivery attached to a booking.
	// Returns nil (not ErrNotFound) when the booking has no delivery.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Delivery, error)

	// GetDetailByID retrieves a delivery with its parent booking resolved.
	GetDetailByID(ctx context.Context, id string) (*domain.DeliveryDetail, error)

	// Update updates an existing delivery.
	Update(ctx context.Context, delivery *domain.Delivery) error
}
