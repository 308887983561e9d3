package domain

// BookingDetail is a booking with its related records eagerly resolved:
// requester, vehicle with vendor, and optional driver with driver user.
type BookingDetail struct {
	Booking    *Booking
	User       *User
	Vehicle    *Vehicle
	Vendor     *Vendor
	Driver     *Driver // nil when no driver is attached
	DriverUser *User   // nil when no driver is attached
	Delivery   *Delivery
}

// DeliveryDetail is a delivery with its parent booking resolved.
type DeliveryDetail struct {
	Delivery *Delivery
	Booking  *BookingDetail
}

// VehicleWithVendor pairs a vehicle with its owning vendor for search results.
type VehicleWithVendor struct {
	Vehicle *Vehicle
	Vendor  *Vendor
}

// DriverWithUser pairs a driver with its user profile and vendor.
type DriverWithUser struct {
	Driver *Driver
	User   *User
	Vendor *Vendor
}
