package domain

import "time"

// LicenseType represents the class of vehicle a driver is licensed for.
type LicenseType string

const (
	LicenseTypeMotorcycle LicenseType = "motorcycle"
	LicenseTypeScooter    LicenseType = "scooter"
	LicenseTypeBoth       LicenseType = "both"
)

// Driver represents a professional driver attached to a vendor.
// Current coordinates are updated opportunistically from delivery status
// updates; HasLocation reports whether they have ever been set.
type Driver struct {
	ID                string
	UserID            string
	VendorID          string
	LicenseNumber     string
	LicenseType       LicenseType
	YearsOfExperience int
	Rating            float64
	IsAvailable       bool
	CurrentLat        float64
	CurrentLng        float64
	HasLocation       bool
	PhoneVerified     bool
	CreatedAt         time.Time
}

// CompatibleLicenses maps a requested vehicle type to the license types
// allowed to operate it.
func CompatibleLicenses(vehicleType VehicleType) []LicenseType {
	switch vehicleType {
	case VehicleTypeMotorbike:
		return []LicenseType{LicenseTypeMotorcycle, LicenseTypeBoth}
	case VehicleTypeScooter, VehicleTypeElectricScooter:
		return []LicenseType{LicenseTypeScooter, LicenseTypeBoth}
	default:
		return nil
	}
}
