package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

const vehicleColumns = `id, vendor_id, vehicle_type, make, model, year, license_plate, color,
	fuel_type, transmission, hourly_rate, daily_rate, description, location_lat, location_lng,
	is_available, condition_status, mileage, created_at`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	var lat, lng sql.NullFloat64
	if vehicle.HasLocation {
		lat = sql.NullFloat64{Float64: vehicle.LocationLat, Valid: true}
		lng = sql.NullFloat64{Float64: vehicle.LocationLng, Valid: true}
	}

	var description sql.NullString
	if vehicle.Description != "" {
		description = sql.NullString{String: vehicle.Description, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.VendorID,
		vehicle.VehicleType,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Color,
		vehicle.FuelType,
		vehicle.Transmission,
		vehicle.HourlyRate,
		vehicle.DailyRate,
		description,
		lat,
		lng,
		vehicle.IsAvailable,
		vehicle.ConditionStatus,
		vehicle.Mileage,
		vehicle.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// scanVehicle scans a vehicle row from any row scanner.
func scanVehicle(scan func(dest ...any) error) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var lat, lng sql.NullFloat64
	var description sql.NullString

	err := scan(
		&vehicle.ID,
		&vehicle.VendorID,
		&vehicle.VehicleType,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.LicensePlate,
		&vehicle.Color,
		&vehicle.FuelType,
		&vehicle.Transmission,
		&vehicle.HourlyRate,
		&vehicle.DailyRate,
		&description,
		&lat,
		&lng,
		&vehicle.IsAvailable,
		&vehicle.ConditionStatus,
		&vehicle.Mileage,
		&vehicle.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		vehicle.Description = description.String
	}
	if lat.Valid && lng.Valid {
		vehicle.LocationLat = lat.Float64
		vehicle.LocationLng = lng.Float64
		vehicle.HasLocation = true
	}

	return &vehicle, nil
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	vehicle, err := scanVehicle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// GetWithVendor retrieves a vehicle with its vendor resolved.
func (r *VehicleRepository) GetWithVendor(ctx context.Context, id string) (*domain.VehicleWithVendor, error) {
	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vendorRepo := &VendorRepository{q: r.q}
	vendor, err := vendorRepo.GetByID(ctx, vehicle.VendorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &domain.VehicleWithVendor{Vehicle: vehicle, Vendor: vendor}, nil
}

// ListByVendor retrieves a vendor's vehicles.
func (r *VehicleRepository) ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE vendor_id = $1
		  AND ($2 = false OR is_available = true)
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, vendorID, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// filterClauses builds the WHERE clauses and args for a vehicle filter.
// The vendor join is aliased as "vd" and vehicles as "v".
func filterClauses(filter repository.VehicleFilter) (string, []any) {
	clauses := []string{"1=1"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		clauses = append(clauses, "v.vehicle_type = "+arg(string(filter.Type)))
	}
	if filter.AvailableOnly {
		clauses = append(clauses, "v.is_available = true")
	}
	if filter.MinHourlyRate > 0 {
		clauses = append(clauses, "v.hourly_rate >= "+arg(filter.MinHourlyRate))
	}
	if filter.MaxHourlyRate > 0 {
		clauses = append(clauses, "v.hourly_rate <= "+arg(filter.MaxHourlyRate))
	}
	if filter.City != "" {
		clauses = append(clauses, "vd.city = "+arg(filter.City))
	}

	return strings.Join(clauses, " AND "), args
}

// Find retrieves vehicles matching the filter with vendors resolved.
func (r *VehicleRepository) Find(ctx context.Context, filter repository.VehicleFilter) ([]*domain.VehicleWithVendor, error) {
	where, args := filterClauses(filter)

	query := `
		SELECT v.id, v.vendor_id, v.vehicle_type, v.make, v.model, v.year, v.license_plate,
		       v.color, v.fuel_type, v.transmission, v.hourly_rate, v.daily_rate, v.description,
		       v.location_lat, v.location_lng, v.is_available, v.condition_status, v.mileage,
		       v.created_at,
		       vd.id, vd.created_by, vd.name, vd.city, vd.address, vd.location_lat,
		       vd.location_lng, vd.rating, vd.is_verified, vd.created_at
		FROM vehicles v
		JOIN vendors vd ON vd.id = v.vendor_id
		WHERE ` + where + `
		ORDER BY v.created_at DESC
	`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*domain.VehicleWithVendor
	for rows.Next() {
		var vehicle domain.Vehicle
		var vendor domain.Vendor
		var vLat, vLng, vdLat, vdLng sql.NullFloat64
		var description, address sql.NullString

		err := rows.Scan(
			&vehicle.ID,
			&vehicle.VendorID,
			&vehicle.VehicleType,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.LicensePlate,
			&vehicle.Color,
			&vehicle.FuelType,
			&vehicle.Transmission,
			&vehicle.HourlyRate,
			&vehicle.DailyRate,
			&description,
			&vLat,
			&vLng,
			&vehicle.IsAvailable,
			&vehicle.ConditionStatus,
			&vehicle.Mileage,
			&vehicle.CreatedAt,
			&vendor.ID,
			&vendor.CreatedBy,
			&vendor.Name,
			&vendor.City,
			&address,
			&vdLat,
			&vdLng,
			&vendor.Rating,
			&vendor.IsVerified,
			&vendor.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if description.Valid {
			vehicle.Description = description.String
		}
		if vLat.Valid && vLng.Valid {
			vehicle.LocationLat = vLat.Float64
			vehicle.LocationLng = vLng.Float64
			vehicle.HasLocation = true
		}
		if address.Valid {
			vendor.Address = address.String
		}
		if vdLat.Valid && vdLng.Valid {
			vendor.LocationLat = vdLat.Float64
			vendor.LocationLng = vdLng.Float64
			vendor.HasLocation = true
		}

		results = append(results, &domain.VehicleWithVendor{Vehicle: &vehicle, Vendor: &vendor})
	}
	return results, rows.Err()
}

// Count returns the number of vehicles matching the filter.
func (r *VehicleRepository) Count(ctx context.Context, filter repository.VehicleFilter) (int, error) {
	where, args := filterClauses(filter)

	query := `
		SELECT COUNT(*)
		FROM vehicles v
		JOIN vendors vd ON vd.id = v.vendor_id
		WHERE ` + where

	var count int
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}
