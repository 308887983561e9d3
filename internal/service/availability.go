package service

import (
	"context"
	"time"

	"motorent/internal/repository"
)

// AvailabilityChecker decides whether a vehicle can be booked for a window.
// Only bookings in confirmed or in_progress count toward conflicts; two
// windows conflict under the half-open rule (start1 < end2 && start2 < end1),
// so a window that abuts another does not conflict.
type AvailabilityChecker struct {
	bookingRepo repository.BookingRepository
}

// NewAvailabilityChecker creates a new AvailabilityChecker.
func NewAvailabilityChecker(bookingRepo repository.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookingRepo: bookingRepo}
}

// IsAvailable reports whether the vehicle has no active booking overlapping
// [start, end). excludeBookingID, when non-empty, is ignored in the check so
// a booking can be re-validated against everything but itself.
//
// The check has no side effects. Callers creating a booking must not rely on
// it alone: the check-then-create sequence is closed against races inside
// BookingService.Create via a vehicle lock and a transactional re-check.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, vehicleID string, start, end time.Time, excludeBookingID string) (bool, error) {
	conflicts, err := c.bookingRepo.FindConflicting(ctx, vehicleID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
