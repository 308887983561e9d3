package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

const driverColumns = `id, user_id, vendor_id, license_number, license_type, years_of_experience,
	rating, is_available, current_location_lat, current_location_lng, phone_verified, created_at`

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var lat, lng sql.NullFloat64
	if driver.HasLocation {
		lat = sql.NullFloat64{Float64: driver.CurrentLat, Valid: true}
		lng = sql.NullFloat64{Float64: driver.CurrentLng, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.UserID,
		driver.VendorID,
		driver.LicenseNumber,
		driver.LicenseType,
		driver.YearsOfExperience,
		driver.Rating,
		driver.IsAvailable,
		lat,
		lng,
		driver.PhoneVerified,
		driver.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// scanDriver scans a driver row from any row scanner.
func scanDriver(scan func(dest ...any) error) (*domain.Driver, error) {
	var driver domain.Driver
	var lat, lng sql.NullFloat64

	err := scan(
		&driver.ID,
		&driver.UserID,
		&driver.VendorID,
		&driver.LicenseNumber,
		&driver.LicenseType,
		&driver.YearsOfExperience,
		&driver.Rating,
		&driver.IsAvailable,
		&lat,
		&lng,
		&driver.PhoneVerified,
		&driver.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		driver.CurrentLat = lat.Float64
		driver.CurrentLng = lng.Float64
		driver.HasLocation = true
	}

	return &driver, nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	driver, err := scanDriver(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

// GetWithUser retrieves a driver with its user and vendor resolved.
func (r *DriverRepository) GetWithUser(ctx context.Context, id string) (*domain.DriverWithUser, error) {
	driver, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &domain.DriverWithUser{Driver: driver}

	userRepo := &UserRepository{q: r.q}
	result.User, err = userRepo.GetByID(ctx, driver.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	vendorRepo := &VendorRepository{q: r.q}
	result.Vendor, err = vendorRepo.GetByID(ctx, driver.VendorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return result, nil
}

// ListByVendor retrieves a vendor's drivers with users resolved.
func (r *DriverRepository) ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.DriverWithUser, error) {
	query := `
		SELECT ` + driverColumns + ` FROM drivers
		WHERE vendor_id = $1
		  AND ($2 = false OR is_available = true)
	`

	rows, err := r.q.QueryContext(ctx, query, vendorID, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers, err := r.collectWithUsers(ctx, rows)
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

// Find retrieves drivers matching the filter with users and vendors resolved.
func (r *DriverRepository) Find(ctx context.Context, filter repository.DriverFilter) ([]*domain.DriverWithUser, error) {
	licenses := make([]string, 0, len(filter.LicenseTypes))
	for _, lt := range filter.LicenseTypes {
		licenses = append(licenses, string(lt))
	}

	query := `
		SELECT ` + driverColumns + ` FROM drivers
		WHERE ($1 = false OR is_available = true)
		  AND (cardinality($2::text[]) = 0 OR license_type = ANY($2))
	`

	rows, err := r.q.QueryContext(ctx, query, filter.AvailableOnly, pq.Array(licenses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectWithUsers(ctx, rows)
}

// collectWithUsers scans driver rows and resolves their user and vendor records.
func (r *DriverRepository) collectWithUsers(ctx context.Context, rows *sql.Rows) ([]*domain.DriverWithUser, error) {
	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows.Scan)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	userRepo := &UserRepository{q: r.q}
	vendorRepo := &VendorRepository{q: r.q}

	results := make([]*domain.DriverWithUser, 0, len(drivers))
	for _, driver := range drivers {
		dw := &domain.DriverWithUser{Driver: driver}

		user, err := userRepo.GetByID(ctx, driver.UserID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		dw.User = user

		vendor, err := vendorRepo.GetByID(ctx, driver.VendorID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		dw.Vendor = vendor

		results = append(results, dw)
	}
	return results, nil
}

// UpdateLocation sets a driver's current coordinates.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	query := `UPDATE drivers SET current_location_lat = $1, current_location_lng = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, lat, lng, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
