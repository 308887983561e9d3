package domain

import "time"

// Vendor owns vehicles and drivers and operates in a single city.
type Vendor struct {
	ID          string
	CreatedBy   string // user ID of the vendor admin
	Name        string
	City        string
	Address     string
	LocationLat float64
	LocationLng float64
	HasLocation bool
	Rating      float64
	IsVerified  bool
	CreatedAt   time.Time
}
