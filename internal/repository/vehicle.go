package repository

import (
	"context"

	"motorent/internal/domain"
)

// VehicleFilter narrows a vehicle search. Rate bounds of zero are ignored.
type VehicleFilter struct {
	Type          domain.VehicleType // empty means any type
	City          string             // vendor city; empty means any city
	AvailableOnly bool
	MinHourlyRate float64
	MaxHourlyRate float64
	Limit         int
	Offset        int
}

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetWithVendor retrieves a vehicle with its vendor resolved.
	GetWithVendor(ctx context.Context, id string) (*domain.VehicleWithVendor, error)

	// ListByVendor retrieves a vendor's vehicles.
	ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.Vehicle, error)

	// Find retrieves vehicles matching the filter with vendors resolved,
	// newest first.
	Find(ctx context.Context, filter VehicleFilter) ([]*domain.VehicleWithVendor, error)

	// Count returns the number of vehicles matching the filter, ignoring
	// Limit and Offset.
	Count(ctx context.Context, filter VehicleFilter) (int, error)
}
