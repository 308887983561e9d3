package handler

import (
	"time"

	"motorent/internal/domain"
)

// Shared JSON views. These are the wire representations nested across
// multiple endpoints; endpoint-specific bodies live next to their handlers.

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// UserView is the public representation of a user. The password hash is
// never exposed.
type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	UserType  string `json:"user_type"`
	CreatedAt string `json:"created_at,omitempty"`
}

func newUserView(u *domain.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		UserType:  string(u.UserType),
		CreatedAt: formatTime(u.CreatedAt),
	}
}

// VendorView is the public representation of a vendor.
type VendorView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address,omitempty"`
	LocationLat *float64 `json:"location_lat,omitempty"`
	LocationLng *float64 `json:"location_lng,omitempty"`
	Rating      float64  `json:"rating"`
	IsVerified  bool     `json:"is_verified"`
}

func newVendorView(v *domain.Vendor) *VendorView {
	if v == nil {
		return nil
	}
	view := &VendorView{
		ID:         v.ID,
		Name:       v.Name,
		City:       v.City,
		Address:    v.Address,
		Rating:     v.Rating,
		IsVerified: v.IsVerified,
	}
	if v.HasLocation {
		lat, lng := v.LocationLat, v.LocationLng
		view.LocationLat = &lat
		view.LocationLng = &lng
	}
	return view
}

// VehicleView is the public representation of a vehicle.
type VehicleView struct {
	ID              string      `json:"id"`
	VendorID        string      `json:"vendor_id"`
	VehicleType     string      `json:"vehicle_type"`
	Make            string      `json:"make"`
	Model           string      `json:"model"`
	Year            int         `json:"year"`
	LicensePlate    string      `json:"license_plate"`
	Color           string      `json:"color,omitempty"`
	FuelType        string      `json:"fuel_type,omitempty"`
	Transmission    string      `json:"transmission,omitempty"`
	HourlyRate      float64     `json:"hourly_rate"`
	DailyRate       float64     `json:"daily_rate"`
	Description     string      `json:"description,omitempty"`
	LocationLat     *float64    `json:"location_lat,omitempty"`
	LocationLng     *float64    `json:"location_lng,omitempty"`
	IsAvailable     bool        `json:"is_available"`
	ConditionStatus string      `json:"condition_status,omitempty"`
	Mileage         int         `json:"mileage,omitempty"`
	Vendor          *VendorView `json:"vendor,omitempty"`
}

func newVehicleView(v *domain.Vehicle, vendor *domain.Vendor) *VehicleView {
	if v == nil {
		return nil
	}
	view := &VehicleView{
		ID:              v.ID,
		VendorID:        v.VendorID,
		VehicleType:     string(v.VehicleType),
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		LicensePlate:    v.LicensePlate,
		Color:           v.Color,
		FuelType:        v.FuelType,
		Transmission:    v.Transmission,
		HourlyRate:      v.HourlyRate,
		DailyRate:       v.DailyRate,
		Description:     v.Description,
		IsAvailable:     v.IsAvailable,
		ConditionStatus: string(v.ConditionStatus),
		Mileage:         v.Mileage,
		Vendor:          newVendorView(vendor),
	}
	if v.HasLocation {
		lat, lng := v.LocationLat, v.LocationLng
		view.LocationLat = &lat
		view.LocationLng = &lng
	}
	return view
}

// DriverView is the public representation of a driver.
type DriverView struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	VendorID          string      `json:"vendor_id"`
	LicenseNumber     string      `json:"license_number"`
	LicenseType       string      `json:"license_type"`
	YearsOfExperience int         `json:"years_of_experience"`
	Rating            float64     `json:"rating"`
	IsAvailable       bool        `json:"is_available"`
	CurrentLat        *float64    `json:"current_lat,omitempty"`
	CurrentLng        *float64    `json:"current_lng,omitempty"`
	User              *UserView   `json:"user,omitempty"`
	Vendor            *VendorView `json:"vendor,omitempty"`
}

func newDriverView(d *domain.Driver, user *domain.User, vendor *domain.Vendor) *DriverView {
	if d == nil {
		return nil
	}
	view := &DriverView{
		ID:                d.ID,
		UserID:            d.UserID,
		VendorID:          d.VendorID,
		LicenseNumber:     d.LicenseNumber,
		LicenseType:       string(d.LicenseType),
		YearsOfExperience: d.YearsOfExperience,
		Rating:            d.Rating,
		IsAvailable:       d.IsAvailable,
		User:              newUserView(user),
		Vendor:            newVendorView(vendor),
	}
	if d.HasLocation {
		lat, lng := d.CurrentLat, d.CurrentLng
		view.CurrentLat = &lat
		view.CurrentLng = &lng
	}
	return view
}

// BookingView is the public representation of a booking, optionally with its
// related records resolved.
type BookingView struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	VehicleID       string       `json:"vehicle_id"`
	DriverID        string       `json:"driver_id,omitempty"`
	BookingType     string       `json:"booking_type"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	PickupLat       float64      `json:"pickup_lat"`
	PickupLng       float64      `json:"pickup_lng"`
	DropoffLat      float64      `json:"dropoff_lat"`
	DropoffLng      float64      `json:"dropoff_lng"`
	TotalHours      float64      `json:"total_hours"`
	TotalAmount     float64      `json:"total_amount"`
	Status          string       `json:"status"`
	PaymentStatus   string       `json:"payment_status"`
	PaymentMethod   string       `json:"payment_method,omitempty"`
	SpecialRequests string       `json:"special_requests,omitempty"`
	CreatedAt       string       `json:"created_at,omitempty"`
	UpdatedAt       string       `json:"updated_at,omitempty"`
	User            *UserView     `json:"user,omitempty"`
	Vehicle         *VehicleView  `json:"vehicle,omitempty"`
	Driver          *DriverView   `json:"driver,omitempty"`
	Delivery        *DeliveryView `json:"delivery,omitempty"`
}

func newBookingView(b *domain.Booking) *BookingView {
	if b == nil {
		return nil
	}
	return &BookingView{
		ID:              b.ID,
		UserID:          b.UserID,
		VehicleID:       b.VehicleID,
		DriverID:        b.DriverID,
		BookingType:     string(b.BookingType),
		StartDate:       formatTime(b.StartDate),
		EndDate:         formatTime(b.EndDate),
		PickupLat:       b.PickupLat,
		PickupLng:       b.PickupLng,
		DropoffLat:      b.DropoffLat,
		DropoffLng:      b.DropoffLng,
		TotalHours:      b.TotalHours,
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentMethod:   string(b.PaymentMethod),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       formatTime(b.CreatedAt),
		UpdatedAt:       formatTime(b.UpdatedAt),
	}
}

func newBookingDetailView(d *domain.BookingDetail) *BookingView {
	if d == nil {
		return nil
	}
	view := newBookingView(d.Booking)
	view.User = newUserView(d.User)
	view.Vehicle = newVehicleView(d.Vehicle, d.Vendor)
	view.Driver = newDriverView(d.Driver, d.DriverUser, nil)
	view.Delivery = newDeliveryView(d.Delivery)
	return view
}

// DeliveryView is the public representation of a delivery.
type DeliveryView struct {
	ID                    string       `json:"id"`
	BookingID             string       `json:"booking_id"`
	SenderName            string       `json:"sender_name"`
	SenderPhone           string       `json:"sender_phone"`
	SenderAddress         string       `json:"sender_address"`
	RecipientName         string       `json:"recipient_name"`
	RecipientPhone        string       `json:"recipient_phone"`
	RecipientAddress      string       `json:"recipient_address"`
	PackageDescription    string       `json:"package_description"`
	PackageWeight         float64      `json:"package_weight,omitempty"`
	PackageDimensions     string       `json:"package_dimensions,omitempty"`
	Priority              string       `json:"priority"`
	Status                string       `json:"status"`
	EstimatedDeliveryTime string       `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    string       `json:"actual_delivery_time,omitempty"`
	DeliveryFee           float64      `json:"delivery_fee"`
	Tips                  float64      `json:"tips,omitempty"`
	SpecialInstructions   string       `json:"special_instructions,omitempty"`
	TrackingNumber        string       `json:"tracking_number"`
	CreatedAt             string       `json:"created_at,omitempty"`
	Booking               *BookingView `json:"booking,omitempty"`
}

func newDeliveryView(d *domain.Delivery) *DeliveryView {
	if d == nil {
		return nil
	}
	return &DeliveryView{
		ID:                    d.ID,
		BookingID:             d.BookingID,
		SenderName:            d.SenderName,
		SenderPhone:           d.SenderPhone,
		SenderAddress:         d.SenderAddress,
		RecipientName:         d.RecipientName,
		RecipientPhone:        d.RecipientPhone,
		RecipientAddress:      d.RecipientAddress,
		PackageDescription:    d.PackageDescription,
		PackageWeight:         d.PackageWeight,
		PackageDimensions:     d.PackageDimensions,
		Priority:              string(d.Priority),
		Status:                string(d.Status),
		EstimatedDeliveryTime: formatTime(d.EstimatedDeliveryTime),
		ActualDeliveryTime:    formatTime(d.ActualDeliveryTime),
		DeliveryFee:           d.DeliveryFee,
		Tips:                  d.Tips,
		SpecialInstructions:   d.SpecialInstructions,
		TrackingNumber:        d.TrackingNumber,
		CreatedAt:             formatTime(d.CreatedAt),
	}
}

func newDeliveryDetailView(d *domain.DeliveryDetail) *DeliveryView {
	if d == nil {
		return nil
	}
	view := newDeliveryView(d.Delivery)
	if d.Booking != nil {
		booking := newBookingDetailView(d.Booking)
		booking.Delivery = nil
		view.Booking = booking
	}
	return view
}

// TransactionView is the public representation of a payment transaction.
type TransactionView struct {
	ID               string  `json:"id"`
	BookingID        string  `json:"booking_id"`
	Amount           float64 `json:"amount"`
	PaymentMethod    string  `json:"payment_method"`
	Status           string  `json:"status"`
	TransactionDate  string  `json:"transaction_date"`
	GatewayReference string  `json:"gateway_reference"`
}

func newTransactionView(t *domain.Transaction) *TransactionView {
	if t == nil {
		return nil
	}
	return &TransactionView{
		ID:               t.ID,
		BookingID:        t.BookingID,
		Amount:           t.Amount,
		PaymentMethod:    string(t.PaymentMethod),
		Status:           t.Status,
		TransactionDate:  formatTime(t.TransactionDate),
		GatewayReference: t.GatewayReference,
	}
}
