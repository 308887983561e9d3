package tests

import (
	"context"
	"testing"
	"time"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// AVAILABILITY OVERLAP RULES
// ──────────────────────────────────────────────

func existingBooking(id, vehicleID string, status domain.BookingStatus, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		UserID:    "user-1",
		VehicleID: vehicleID,
		Status:    status,
		StartDate: start,
		EndDate:   end,
	}
}

func TestAvailability_OverlapRules(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	existingStart := base
	existingEnd := base.Add(4 * time.Hour)

	testCases := []struct {
		name          string
		reqStart      time.Time
		reqEnd        time.Time
		wantAvailable bool
	}{
		{
			name:     "identical window conflicts",
			reqStart: existingStart, reqEnd: existingEnd,
			wantAvailable: false,
		},
		{
			name:     "window inside existing conflicts",
			reqStart: existingStart.Add(time.Hour), reqEnd: existingEnd.Add(-time.Hour),
			wantAvailable: false,
		},
		{
			name:     "window containing existing conflicts",
			reqStart: existingStart.Add(-time.Hour), reqEnd: existingEnd.Add(time.Hour),
			wantAvailable: false,
		},
		{
			name:     "partial overlap at start conflicts",
			reqStart: existingStart.Add(-time.Hour), reqEnd: existingStart.Add(time.Hour),
			wantAvailable: false,
		},
		{
			name:     "partial overlap at end conflicts",
			reqStart: existingEnd.Add(-time.Hour), reqEnd: existingEnd.Add(time.Hour),
			wantAvailable: false,
		},
		{
			name:     "abutting before does not conflict",
			reqStart: existingStart.Add(-2 * time.Hour), reqEnd: existingStart,
			wantAvailable: true,
		},
		{
			name:     "abutting after does not conflict",
			reqStart: existingEnd, reqEnd: existingEnd.Add(2 * time.Hour),
			wantAvailable: true,
		},
		{
			name:     "disjoint window does not conflict",
			reqStart: existingEnd.Add(24 * time.Hour), reqEnd: existingEnd.Add(28 * time.Hour),
			wantAvailable: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bookingRepo := NewMockBookingRepository()
			bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, existingStart, existingEnd))

			checker := service.NewAvailabilityChecker(bookingRepo)

			available, err := checker.IsAvailable(context.Background(), "vehicle-1", tc.reqStart, tc.reqEnd, "")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if available != tc.wantAvailable {
				t.Errorf("IsAvailable() = %v, want %v", available, tc.wantAvailable)
			}
		})
	}
}

func TestAvailability_OnlyActiveStatusesBlock(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		status        domain.BookingStatus
		wantAvailable bool
	}{
		{name: "confirmed blocks", status: domain.BookingStatusConfirmed, wantAvailable: false},
		{name: "in_progress blocks", status: domain.BookingStatusInProgress, wantAvailable: false},
		{name: "pending does not block", status: domain.BookingStatusPending, wantAvailable: true},
		{name: "cancelled does not block", status: domain.BookingStatusCancelled, wantAvailable: true},
		{name: "completed does not block", status: domain.BookingStatusCompleted, wantAvailable: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bookingRepo := NewMockBookingRepository()
			bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", tc.status, base, base.Add(4*time.Hour)))

			checker := service.NewAvailabilityChecker(bookingRepo)

			available, err := checker.IsAvailable(context.Background(), "vehicle-1", base, base.Add(4*time.Hour), "")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if available != tc.wantAvailable {
				t.Errorf("IsAvailable() = %v, want %v", available, tc.wantAvailable)
			}
		})
	}
}

func TestAvailability_ExcludesOwnBooking(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, base, base.Add(4*time.Hour)))

	checker := service.NewAvailabilityChecker(bookingRepo)

	// Re-validating a booking against itself must not report a conflict.
	available, err := checker.IsAvailable(context.Background(), "vehicle-1", base, base.Add(4*time.Hour), "b-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !available {
		t.Error("expected booking to be available when excluding itself")
	}
}

func TestAvailability_OtherVehicleUnaffected(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, base, base.Add(4*time.Hour)))

	checker := service.NewAvailabilityChecker(bookingRepo)

	available, err := checker.IsAvailable(context.Background(), "vehicle-2", base, base.Add(4*time.Hour), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !available {
		t.Error("expected other vehicle to be available")
	}
}
