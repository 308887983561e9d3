package tests

import (
	"context"
	"testing"
	"time"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// 1. VEHICLE SEARCH
// ──────────────────────────────────────────────

func newSearchService(vehicleRepo *MockVehicleRepository, driverRepo *MockDriverRepository, bookingRepo *MockBookingRepository) *service.SearchService {
	return service.NewSearchService(vehicleRepo, driverRepo, service.NewAvailabilityChecker(bookingRepo))
}

func locatedVehicle(id string, lat, lng float64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:          id,
		VendorID:    "vendor-1",
		VehicleType: domain.VehicleTypeScooter,
		HourlyRate:  10000,
		IsAvailable: true,
		LocationLat: lat,
		LocationLng: lng,
		HasLocation: true,
	}
}

func TestSearchVehicles_RadiusFilter(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	// Center at Monas, Jakarta. ~1.1 km per 0.01 degrees of latitude.
	vehicleRepo.AddVehicle(locatedVehicle("near", -6.1754, 106.8272))
	vehicleRepo.AddVehicle(locatedVehicle("mid", -6.2000, 106.8272))
	vehicleRepo.AddVehicle(locatedVehicle("far", -6.9175, 107.6191)) // Bandung

	noCoords := locatedVehicle("no-coords", 0, 0)
	noCoords.HasLocation = false
	vehicleRepo.AddVehicle(noCoords)

	svc := newSearchService(vehicleRepo, NewMockDriverRepository(), NewMockBookingRepository())

	results, err := svc.SearchVehicles(context.Background(), service.VehicleSearchRequest{
		HasCenter: true,
		CenterLat: -6.1754,
		CenterLng: 106.8272,
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results within 5 km, got %d", len(results))
	}
	for _, r := range results {
		if r.Vehicle.ID == "far" {
			t.Error("vehicle outside radius included")
		}
		if r.Vehicle.ID == "no-coords" {
			t.Error("vehicle without coordinates included in radius search")
		}
		if r.DistanceKm > 5 {
			t.Errorf("result distance %.2f exceeds radius", r.DistanceKm)
		}
	}
}

func TestSearchVehicles_RadiusBoundaryInclusive(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	// One degree of longitude at the equator is ~111.19 km.
	vehicleRepo.AddVehicle(locatedVehicle("edge", 0, 1))

	svc := newSearchService(vehicleRepo, NewMockDriverRepository(), NewMockBookingRepository())

	results, err := svc.SearchVehicles(context.Background(), service.VehicleSearchRequest{
		HasCenter: true,
		CenterLat: 0,
		CenterLng: 0,
		RadiusKm:  111.20,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected vehicle on radius boundary to be included, got %d results", len(results))
	}
}

func TestSearchVehicles_NoCenterSkipsRadius(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(locatedVehicle("v-1", -6.2, 106.8))
	noCoords := locatedVehicle("v-2", 0, 0)
	noCoords.HasLocation = false
	vehicleRepo.AddVehicle(noCoords)

	svc := newSearchService(vehicleRepo, NewMockDriverRepository(), NewMockBookingRepository())

	results, err := svc.SearchVehicles(context.Background(), service.VehicleSearchRequest{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected all vehicles without a center, got %d", len(results))
	}
}

func TestSearchVehicles_WindowAnnotation(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(locatedVehicle("busy", -6.2, 106.8))
	vehicleRepo.AddVehicle(locatedVehicle("free", -6.2, 106.8))

	bookingRepo := NewMockBookingRepository()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bookingRepo.AddBooking(existingBooking("b-1", "busy", domain.BookingStatusConfirmed, start, start.Add(4*time.Hour)))

	svc := newSearchService(vehicleRepo, NewMockDriverRepository(), bookingRepo)

	results, err := svc.SearchVehicles(context.Background(), service.VehicleSearchRequest{
		HasWindow: true,
		StartDate: start.Add(time.Hour),
		EndDate:   start.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	byID := map[string]bool{}
	for _, r := range results {
		if !r.HasWindow {
			t.Errorf("expected window annotation for %s", r.Vehicle.ID)
		}
		byID[r.Vehicle.ID] = r.Available
	}

	if byID["busy"] {
		t.Error("expected busy vehicle to be unavailable for the window")
	}
	if !byID["free"] {
		t.Error("expected free vehicle to be available for the window")
	}
}

func TestSearchVehicles_InvalidWindow_Fails(t *testing.T) {
	t.Parallel()

	svc := newSearchService(NewMockVehicleRepository(), NewMockDriverRepository(), NewMockBookingRepository())

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.SearchVehicles(context.Background(), service.VehicleSearchRequest{
		HasWindow: true,
		StartDate: start,
		EndDate:   start,
	})
	if err == nil {
		t.Error("expected error for empty window")
	}
}

// ──────────────────────────────────────────────
// 2. DRIVER SEARCH
// ──────────────────────────────────────────────

func licensedDriver(id string, license domain.LicenseType) *domain.Driver {
	return &domain.Driver{
		ID:          id,
		VendorID:    "vendor-1",
		LicenseType: license,
		IsAvailable: true,
		CurrentLat:  -6.2,
		CurrentLng:  106.8,
		HasLocation: true,
	}
}

func TestSearchDrivers_LicenseCompatibility(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		vehicleType domain.VehicleType
		wantIDs     map[string]bool
	}{
		{
			name:        "motorbike needs motorcycle or both",
			vehicleType: domain.VehicleTypeMotorbike,
			wantIDs:     map[string]bool{"moto": true, "both": true},
		},
		{
			name:        "scooter needs scooter or both",
			vehicleType: domain.VehicleTypeScooter,
			wantIDs:     map[string]bool{"scoot": true, "both": true},
		},
		{
			name:        "electric scooter matches scooter licenses",
			vehicleType: domain.VehicleTypeElectricScooter,
			wantIDs:     map[string]bool{"scoot": true, "both": true},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			driverRepo := NewMockDriverRepository()
			driverRepo.AddDriver(licensedDriver("moto", domain.LicenseTypeMotorcycle))
			driverRepo.AddDriver(licensedDriver("scoot", domain.LicenseTypeScooter))
			driverRepo.AddDriver(licensedDriver("both", domain.LicenseTypeBoth))

			svc := newSearchService(NewMockVehicleRepository(), driverRepo, NewMockBookingRepository())

			results, err := svc.SearchDrivers(context.Background(), service.DriverSearchRequest{
				VehicleType: tc.vehicleType,
			})
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if len(results) != len(tc.wantIDs) {
				t.Fatalf("expected %d drivers, got %d", len(tc.wantIDs), len(results))
			}
			for _, r := range results {
				if !tc.wantIDs[r.Driver.ID] {
					t.Errorf("unexpected driver %s in results", r.Driver.ID)
				}
			}
		})
	}
}

func TestSearchDrivers_RadiusExcludesUnknownPosition(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(licensedDriver("near", domain.LicenseTypeBoth))

	unknown := licensedDriver("unknown", domain.LicenseTypeBoth)
	unknown.HasLocation = false
	driverRepo.AddDriver(unknown)

	svc := newSearchService(NewMockVehicleRepository(), driverRepo, NewMockBookingRepository())

	results, err := svc.SearchDrivers(context.Background(), service.DriverSearchRequest{
		HasCenter: true,
		CenterLat: -6.2,
		CenterLng: 106.8,
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != 1 || results[0].Driver.ID != "near" {
		t.Errorf("expected only the located driver, got %d results", len(results))
	}
}

func TestSearchDrivers_AvailabilityFilter(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(licensedDriver("free", domain.LicenseTypeBoth))

	busy := licensedDriver("busy", domain.LicenseTypeBoth)
	busy.IsAvailable = false
	driverRepo.AddDriver(busy)

	svc := newSearchService(NewMockVehicleRepository(), driverRepo, NewMockBookingRepository())

	results, err := svc.SearchDrivers(context.Background(), service.DriverSearchRequest{
		AvailableOnly: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != 1 || results[0].Driver.ID != "free" {
		t.Errorf("expected only available drivers, got %d results", len(results))
	}
}
