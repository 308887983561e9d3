package service

import (
	"sort"
	"strings"
	"time"

	"motorent/internal/domain"
)

// Delivery offsets by priority.
const (
	standardDeliveryOffset = 24 * time.Hour
	expressDeliveryOffset  = 4 * time.Hour
	urgentDeliveryOffset   = 2 * time.Hour

	pickedUpOffset  = 2 * time.Hour
	inTransitOffset = 4 * time.Hour
)

// statusSequence is the forward order of delivery statuses used to
// reconstruct a timeline. "failed" never appears in a synthesized history.
var statusSequence = []domain.DeliveryStatus{
	domain.DeliveryStatusPending,
	domain.DeliveryStatusPickedUp,
	domain.DeliveryStatusInTransit,
	domain.DeliveryStatusDelivered,
}

// EstimateDeliveryTime returns the expected delivery time for a priority,
// measured from now. Unrecognized priorities fall back to the standard offset.
func EstimateDeliveryTime(priority domain.DeliveryPriority, now time.Time) time.Time {
	switch priority {
	case domain.DeliveryPriorityUrgent:
		return now.Add(urgentDeliveryOffset)
	case domain.DeliveryPriorityExpress:
		return now.Add(expressDeliveryOffset)
	default:
		return now.Add(standardDeliveryOffset)
	}
}

// BuildTrackingHistory reconstructs a plausible event timeline for a delivery
// from its current state, most recent first. The history is not a stored
// audit log: it is derived deterministically from the delivery's creation
// time and current status, so replaying it after further status changes
// yields a different sequence.
func BuildTrackingHistory(delivery *domain.Delivery, now time.Time) []domain.TrackingEvent {
	createdAt := delivery.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	history := []domain.TrackingEvent{
		{
			Status:      domain.DeliveryStatusPending,
			Description: "Order placed",
			Timestamp:   createdAt,
			Location:    "System",
		},
	}

	currentIndex := -1
	for i, s := range statusSequence {
		if s == delivery.Status {
			currentIndex = i
			break
		}
	}

	for i := 1; i <= currentIndex; i++ {
		var event domain.TrackingEvent
		switch statusSequence[i] {
		case domain.DeliveryStatusPickedUp:
			event = domain.TrackingEvent{
				Status:      domain.DeliveryStatusPickedUp,
				Description: "Package picked up from sender",
				Timestamp:   createdAt.Add(pickedUpOffset),
				Location:    addressArea(delivery.SenderAddress, "Pickup Location"),
			}
		case domain.DeliveryStatusInTransit:
			event = domain.TrackingEvent{
				Status:      domain.DeliveryStatusInTransit,
				Description: "Package is on the way to recipient",
				Timestamp:   createdAt.Add(inTransitOffset),
				Location:    "In Transit",
			}
		case domain.DeliveryStatusDelivered:
			deliveredAt := delivery.ActualDeliveryTime
			if deliveredAt.IsZero() {
				deliveredAt = now
			}
			event = domain.TrackingEvent{
				Status:      domain.DeliveryStatusDelivered,
				Description: "Package delivered successfully",
				Timestamp:   deliveredAt,
				Location:    addressArea(delivery.RecipientAddress, "Delivery Location"),
			}
		}
		history = append(history, event)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})

	return history
}

// addressArea returns the first comma-separated segment of an address, or the
// fallback when the address is empty.
func addressArea(address, fallback string) string {
	area, _, _ := strings.Cut(address, ",")
	area = strings.TrimSpace(area)
	if area == "" {
		return fallback
	}
	return area
}

// StatusDescription returns the human-readable description for a delivery
// status.
func StatusDescription(status domain.DeliveryStatus) string {
	switch status {
	case domain.DeliveryStatusPending:
		return "Your delivery request has been received and is being processed"
	case domain.DeliveryStatusPickedUp:
		return "The package has been picked up from the sender"
	case domain.DeliveryStatusInTransit:
		return "The package is on its way to the recipient"
	case domain.DeliveryStatusDelivered:
		return "The package has been successfully delivered"
	case domain.DeliveryStatusFailed:
		return "Delivery attempt failed - please contact support"
	default:
		return "Status unknown"
	}
}
