package repository

import (
	"context"

	"motorent/internal/domain"
)

// DriverFilter narrows a driver search.
type DriverFilter struct {
	AvailableOnly bool
	LicenseTypes  []domain.LicenseType // empty means any license type
}

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetWithUser retrieves a driver with its user and vendor resolved.
	GetWithUser(ctx context.Context, id string) (*domain.DriverWithUser, error)

	// ListByVendor retrieves a vendor's drivers with users resolved.
	ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.DriverWithUser, error)

	// Find retrieves drivers matching the filter with users and vendors
	// resolved.
	Find(ctx context.Context, filter DriverFilter) ([]*domain.DriverWithUser, error)

	// UpdateLocation sets a driver's current coordinates.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error
}
