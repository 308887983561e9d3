package domain

import "time"

// DeliveryPriority determines the estimated delivery offset.
type DeliveryPriority string

const (
	DeliveryPriorityStandard DeliveryPriority = "standard"
	DeliveryPriorityExpress  DeliveryPriority = "express"
	DeliveryPriorityUrgent   DeliveryPriority = "urgent"
)

// DeliveryStatus represents the progress of a parcel delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// Delivery is a parcel-transport request attached to exactly one booking.
// TrackingNumber is assigned once at creation and never reassigned.
type Delivery struct {
	ID                    string
	BookingID             string
	SenderName            string
	SenderPhone           string
	SenderAddress         string
	RecipientName         string
	RecipientPhone        string
	RecipientAddress      string
	PackageDescription    string
	PackageWeight         float64
	PackageDimensions     string // JSON blob: length, width, height in cm
	Priority              DeliveryPriority
	Status                DeliveryStatus
	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    time.Time // zero until delivered
	DeliveryFee           float64
	Tips                  float64
	SpecialInstructions   string
	TrackingNumber        string
	CreatedAt             time.Time
}

// TrackingEvent is one entry in a delivery's synthesized tracking timeline.
type TrackingEvent struct {
	Status      DeliveryStatus
	Description string
	Timestamp   time.Time
	Location    string
}
