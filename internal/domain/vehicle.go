package domain

import "time"

// VehicleType represents the category of a vehicle.
type VehicleType string

const (
	VehicleTypeMotorbike       VehicleType = "motorbike"
	VehicleTypeScooter         VehicleType = "scooter"
	VehicleTypeElectricScooter VehicleType = "electric_scooter"
)

// ConditionStatus represents the physical condition of a vehicle.
type ConditionStatus string

const (
	ConditionExcellent ConditionStatus = "excellent"
	ConditionGood      ConditionStatus = "good"
	ConditionFair      ConditionStatus = "fair"
	ConditionPoor      ConditionStatus = "poor"
)

// Vehicle represents a rentable vehicle owned by a vendor.
// LocationLat/LocationLng may be unset (HasLocation false), in which case
// the vehicle is excluded from radius-based search.
type Vehicle struct {
	ID              string
	VendorID        string
	VehicleType     VehicleType
	Make            string
	Model           string
	Year            int
	LicensePlate    string
	Color           string
	FuelType        string
	Transmission    string
	HourlyRate      float64
	DailyRate       float64
	Description     string
	LocationLat     float64
	LocationLng     float64
	HasLocation     bool
	IsAvailable     bool
	ConditionStatus ConditionStatus
	Mileage         int
	CreatedAt       time.Time
}
