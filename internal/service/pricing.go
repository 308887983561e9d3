package service

import "time"

// ComputeRentalTotal returns the rental charge for the window at the given
// hourly rate. Hours are real-valued, so partial hours are billed
// proportionally. Fails with ErrInvalidBookingWindow when end <= start.
func ComputeRentalTotal(start, end time.Time, hourlyRate float64) (float64, error) {
	if !end.After(start) {
		return 0, ErrInvalidBookingWindow
	}
	return RentalHours(start, end) * hourlyRate, nil
}

// RentalHours returns the elapsed hours between start and end as a float.
func RentalHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// ApplyDeliveryFee adds a delivery fee to an existing total. Negative fees
// are treated as zero so the total never decreases.
func ApplyDeliveryFee(total, fee float64) float64 {
	if fee < 0 {
		fee = 0
	}
	return total + fee
}
