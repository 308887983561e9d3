package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// BookingType distinguishes a plain rental from a delivery booking.
type BookingType string

const (
	BookingTypeRental   BookingType = "rental"
	BookingTypeDelivery BookingType = "delivery"
)

// PaymentMethod represents how a booking is paid.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodDigitalWallet PaymentMethod = "digital_wallet"
)

// Booking represents a reservation of a vehicle (and optional driver)
// for a half-open time window [StartDate, EndDate).
type Booking struct {
	ID              string
	UserID          string
	VehicleID       string
	DriverID        string // optional
	BookingType     BookingType
	StartDate       time.Time
	EndDate         time.Time
	PickupLat       float64
	PickupLng       float64
	DropoffLat      float64
	DropoffLng      float64
	TotalHours      float64
	TotalAmount     float64
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod // empty until payment is processed
	SpecialRequests string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transaction is the synthesized audit record returned by payment processing.
// No real gateway is involved; the gateway port produces the reference values.
type Transaction struct {
	ID               string
	BookingID        string
	Amount           float64
	PaymentMethod    PaymentMethod
	Status           string
	TransactionDate  time.Time
	GatewayReference string
}
