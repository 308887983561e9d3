package repository

import (
	"context"

	"motorent/internal/domain"
)

// VendorRepository defines the persistence operations for vendors.
type VendorRepository interface {
	// Create persists a new vendor.
	Create(ctx context.Context, vendor *domain.Vendor) error

	// GetByID retrieves a vendor by ID.
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)

	// List retrieves vendors, optionally filtered by city and verification.
	List(ctx context.Context, city string, verifiedOnly bool) ([]*domain.Vendor, error)
}
