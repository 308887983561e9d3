package service

import (
	"context"
	"time"

	"motorent/internal/domain"
	"motorent/internal/geo"
	"motorent/internal/repository"
)

// SearchService answers vehicle and driver discovery queries. Attribute
// filters are pushed to SQL; radius filtering is a Haversine linear scan over
// the returned rows.
type SearchService struct {
	vehicleRepo  repository.VehicleRepository
	driverRepo   repository.DriverRepository
	availability *AvailabilityChecker
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	availability *AvailabilityChecker,
) *SearchService {
	return &SearchService{
		vehicleRepo:  vehicleRepo,
		driverRepo:   driverRepo,
		availability: availability,
	}
}

// VehicleSearchRequest contains the parameters for a vehicle search.
// HasCenter selects radius filtering; HasWindow selects availability
// annotation for a rental window.
type VehicleSearchRequest struct {
	Type          domain.VehicleType
	City          string
	AvailableOnly bool
	MinHourlyRate float64
	MaxHourlyRate float64

	HasCenter bool
	CenterLat float64
	CenterLng float64
	RadiusKm  float64

	HasWindow bool
	StartDate time.Time
	EndDate   time.Time
}

// VehicleSearchResult is one vehicle search hit.
type VehicleSearchResult struct {
	Vehicle    *domain.Vehicle
	Vendor     *domain.Vendor
	DistanceKm float64 // meaningful only when the request had a center
	HasWindow  bool
	Available  bool // availability for the requested window
}

const defaultSearchRadiusKm = 10.0

// SearchVehicles finds vehicles matching the request. Vehicles without
// coordinates are excluded from radius searches. When a date window is
// given, each hit is annotated with its availability for that window.
func (s *SearchService) SearchVehicles(ctx context.Context, req VehicleSearchRequest) ([]*VehicleSearchResult, error) {
	if req.HasWindow && !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidBookingWindow
	}

	filter := repository.VehicleFilter{
		Type:          req.Type,
		City:          req.City,
		AvailableOnly: req.AvailableOnly,
		MinHourlyRate: req.MinHourlyRate,
		MaxHourlyRate: req.MaxHourlyRate,
	}

	rows, err := s.vehicleRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	radius := req.RadiusKm
	if req.HasCenter && radius <= 0 {
		radius = defaultSearchRadiusKm
	}

	results := make([]*VehicleSearchResult, 0, len(rows))
	for _, row := range rows {
		result := &VehicleSearchResult{
			Vehicle: row.Vehicle,
			Vendor:  row.Vendor,
		}

		if req.HasCenter {
			if !row.Vehicle.HasLocation {
				continue
			}
			d := geo.Distance(req.CenterLat, req.CenterLng, row.Vehicle.LocationLat, row.Vehicle.LocationLng)
			if d > radius {
				continue
			}
			result.DistanceKm = d
		}

		if req.HasWindow {
			available, err := s.availability.IsAvailable(ctx, row.Vehicle.ID, req.StartDate, req.EndDate, "")
			if err != nil {
				return nil, err
			}
			result.HasWindow = true
			result.Available = available
		}

		results = append(results, result)
	}

	return results, nil
}

// DriverSearchRequest contains the parameters for a driver search.
type DriverSearchRequest struct {
	VehicleType   domain.VehicleType // empty means any license type
	AvailableOnly bool

	HasCenter bool
	CenterLat float64
	CenterLng float64
	RadiusKm  float64
}

// DriverSearchResult is one driver search hit.
type DriverSearchResult struct {
	Driver     *domain.Driver
	User       *domain.User
	Vendor     *domain.Vendor
	DistanceKm float64 // meaningful only when the request had a center
}

// SearchDrivers finds drivers compatible with a vehicle type, optionally
// within a radius of a center point. Drivers without a known position are
// excluded from radius searches.
func (s *SearchService) SearchDrivers(ctx context.Context, req DriverSearchRequest) ([]*DriverSearchResult, error) {
	filter := repository.DriverFilter{
		AvailableOnly: req.AvailableOnly,
	}
	if req.VehicleType != "" {
		filter.LicenseTypes = domain.CompatibleLicenses(req.VehicleType)
	}

	rows, err := s.driverRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	radius := req.RadiusKm
	if req.HasCenter && radius <= 0 {
		radius = defaultSearchRadiusKm
	}

	results := make([]*DriverSearchResult, 0, len(rows))
	for _, row := range rows {
		result := &DriverSearchResult{
			Driver: row.Driver,
			User:   row.User,
			Vendor: row.Vendor,
		}

		if req.HasCenter {
			if !row.Driver.HasLocation {
				continue
			}
			d := geo.Distance(req.CenterLat, req.CenterLng, row.Driver.CurrentLat, row.Driver.CurrentLng)
			if d > radius {
				continue
			}
			result.DistanceKm = d
		}

		results = append(results, result)
	}

	return results, nil
}
