package postgres

import (
	"context"
	"database/sql"
	"errors"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// VendorRepository is a PostgreSQL implementation of repository.VendorRepository.
type VendorRepository struct {
	q Querier
}

// NewVendorRepository creates a new PostgreSQL vendor repository.
func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{q: db}
}

const vendorColumns = `id, created_by, name, city, address, location_lat, location_lng,
	rating, is_verified, created_at`

// Create persists a new vendor.
func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var lat, lng sql.NullFloat64
	if vendor.HasLocation {
		lat = sql.NullFloat64{Float64: vendor.LocationLat, Valid: true}
		lng = sql.NullFloat64{Float64: vendor.LocationLng, Valid: true}
	}

	var address sql.NullString
	if vendor.Address != "" {
		address = sql.NullString{String: vendor.Address, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		vendor.ID,
		vendor.CreatedBy,
		vendor.Name,
		vendor.City,
		address,
		lat,
		lng,
		vendor.Rating,
		vendor.IsVerified,
		vendor.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// scanVendor scans a vendor row from any row scanner.
func scanVendor(scan func(dest ...any) error) (*domain.Vendor, error) {
	var vendor domain.Vendor
	var lat, lng sql.NullFloat64
	var address sql.NullString

	err := scan(
		&vendor.ID,
		&vendor.CreatedBy,
		&vendor.Name,
		&vendor.City,
		&address,
		&lat,
		&lng,
		&vendor.Rating,
		&vendor.IsVerified,
		&vendor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		vendor.Address = address.String
	}
	if lat.Valid && lng.Valid {
		vendor.LocationLat = lat.Float64
		vendor.LocationLng = lng.Float64
		vendor.HasLocation = true
	}

	return &vendor, nil
}

// GetByID retrieves a vendor by ID.
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	vendor, err := scanVendor(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return vendor, nil
}

// List retrieves vendors, optionally filtered by city and verification.
func (r *VendorRepository) List(ctx context.Context, city string, verifiedOnly bool) ([]*domain.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + ` FROM vendors
		WHERE ($1 = '' OR city = $1)
		  AND ($2 = false OR is_verified = true)
		LIMIT 50
	`

	rows, err := r.q.QueryContext(ctx, query, city, verifiedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
