package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"motorent/internal/domain"
	"motorent/internal/repository"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// 1. DELIVERY CREATION
// ──────────────────────────────────────────────

func newDeliveryService(deliveryRepo *MockDeliveryRepository, bookingRepo *MockBookingRepository, driverRepo *MockDriverRepository, locationStore *MockLocationStore) *service.DeliveryService {
	// A typed nil behind the interface would defeat the service's nil checks.
	if locationStore == nil {
		return service.NewDeliveryService(nil, deliveryRepo, bookingRepo, driverRepo, nil, nil)
	}
	return service.NewDeliveryService(nil, deliveryRepo, bookingRepo, driverRepo, locationStore, nil)
}

func validDeliveryRequest(bookingID string) service.CreateDeliveryRequest {
	return service.CreateDeliveryRequest{
		BookingID:          bookingID,
		SenderName:         "Budi",
		SenderPhone:        "+62811111111",
		SenderAddress:      "Menteng, Jakarta Pusat",
		RecipientName:      "Sari",
		RecipientPhone:     "+62822222222",
		RecipientAddress:   "Kemang, Jakarta Selatan",
		PackageDescription: "Documents",
		PackageWeight:      0.5,
		DeliveryFee:        20000,
	}
}

func TestDeliveryCreation_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, time.Now(), time.Now().Add(4*time.Hour))
	booking.TotalAmount = 60000
	bookingRepo.AddBooking(booking)

	deliveryRepo := NewMockDeliveryRepository()
	svc := newDeliveryService(deliveryRepo, bookingRepo, NewMockDriverRepository(), nil)

	detail, err := svc.CreateDelivery(context.Background(), validDeliveryRequest("b-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	delivery := detail.Delivery
	if delivery.ID == "" {
		t.Error("expected delivery ID to be set")
	}
	if delivery.Status != domain.DeliveryStatusPending {
		t.Errorf("expected status pending, got %s", delivery.Status)
	}
	if delivery.Priority != domain.DeliveryPriorityStandard {
		t.Errorf("expected default priority standard, got %s", delivery.Priority)
	}
	if !strings.HasPrefix(delivery.TrackingNumber, "DEL") {
		t.Errorf("expected tracking number with DEL prefix, got %q", delivery.TrackingNumber)
	}
	if delivery.EstimatedDeliveryTime.IsZero() {
		t.Error("expected estimated delivery time to be set")
	}

	// The delivery fee is folded into the booking total.
	if got := bookingRepo.GetBooking("b-1").TotalAmount; got != 80000 {
		t.Errorf("expected booking total 80000 after fee, got %v", got)
	}
}

func TestDeliveryCreation_MissingFields_Fails(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name   string
		mutate func(*service.CreateDeliveryRequest)
	}{
		{name: "missing booking", mutate: func(r *service.CreateDeliveryRequest) { r.BookingID = "" }},
		{name: "missing sender name", mutate: func(r *service.CreateDeliveryRequest) { r.SenderName = "" }},
		{name: "missing sender phone", mutate: func(r *service.CreateDeliveryRequest) { r.SenderPhone = "" }},
		{name: "missing sender address", mutate: func(r *service.CreateDeliveryRequest) { r.SenderAddress = "" }},
		{name: "missing recipient name", mutate: func(r *service.CreateDeliveryRequest) { r.RecipientName = "" }},
		{name: "missing recipient phone", mutate: func(r *service.CreateDeliveryRequest) { r.RecipientPhone = "" }},
		{name: "missing recipient address", mutate: func(r *service.CreateDeliveryRequest) { r.RecipientAddress = "" }},
		{name: "missing package description", mutate: func(r *service.CreateDeliveryRequest) { r.PackageDescription = "" }},
	}

	for _, tc := range mutations {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newDeliveryService(NewMockDeliveryRepository(), NewMockBookingRepository(), NewMockDriverRepository(), nil)

			req := validDeliveryRequest("b-1")
			tc.mutate(&req)

			_, err := svc.CreateDelivery(context.Background(), req)
			if !errors.Is(err, service.ErrMissingDeliveryFields) {
				t.Errorf("expected ErrMissingDeliveryFields, got: %v", err)
			}
		})
	}
}

func TestDeliveryCreation_UnknownBooking_Fails(t *testing.T) {
	t.Parallel()

	svc := newDeliveryService(NewMockDeliveryRepository(), NewMockBookingRepository(), NewMockDriverRepository(), nil)

	_, err := svc.CreateDelivery(context.Background(), validDeliveryRequest("no-such-booking"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeliveryCreation_DuplicateForBooking_Fails(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, time.Now(), time.Now().Add(time.Hour)))

	deliveryRepo := NewMockDeliveryRepository()
	svc := newDeliveryService(deliveryRepo, bookingRepo, NewMockDriverRepository(), nil)

	if _, err := svc.CreateDelivery(context.Background(), validDeliveryRequest("b-1")); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}

	_, err := svc.CreateDelivery(context.Background(), validDeliveryRequest("b-1"))
	if !errors.Is(err, service.ErrDeliveryExists) {
		t.Errorf("expected ErrDeliveryExists, got: %v", err)
	}
	if deliveryRepo.CountDeliveries() != 1 {
		t.Errorf("expected a single delivery, have %d", deliveryRepo.CountDeliveries())
	}
}

// ──────────────────────────────────────────────
// 2. STATUS UPDATES
// ──────────────────────────────────────────────

func addedDelivery(deliveryRepo *MockDeliveryRepository, id, bookingID string, status domain.DeliveryStatus) *domain.Delivery {
	delivery := &domain.Delivery{
		ID:                 id,
		BookingID:          bookingID,
		SenderAddress:      "Menteng, Jakarta Pusat",
		RecipientAddress:   "Kemang, Jakarta Selatan",
		PackageDescription: "Documents",
		Priority:           domain.DeliveryPriorityStandard,
		Status:             status,
		TrackingNumber:     "DEL1748700000000123",
		CreatedAt:          time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	deliveryRepo.AddDelivery(delivery)
	return delivery
}

func TestUpdateDeliveryStatus_DeliveredStampsActualTime(t *testing.T) {
	t.Parallel()

	deliveryRepo := NewMockDeliveryRepository()
	addedDelivery(deliveryRepo, "d-1", "b-1", domain.DeliveryStatusInTransit)

	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusInProgress, time.Now(), time.Now().Add(time.Hour)))

	svc := newDeliveryService(deliveryRepo, bookingRepo, NewMockDriverRepository(), nil)

	updated, err := svc.UpdateDeliveryStatus(context.Background(), service.UpdateDeliveryStatusRequest{
		DeliveryID: "d-1",
		Status:     domain.DeliveryStatusDelivered,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if updated.Status != domain.DeliveryStatusDelivered {
		t.Errorf("expected status delivered, got %s", updated.Status)
	}
	if updated.ActualDeliveryTime.IsZero() {
		t.Error("expected actual delivery time to be stamped")
	}
}

func TestUpdateDeliveryStatus_UnknownStatus_Fails(t *testing.T) {
	t.Parallel()

	deliveryRepo := NewMockDeliveryRepository()
	addedDelivery(deliveryRepo, "d-1", "b-1", domain.DeliveryStatusPending)

	svc := newDeliveryService(deliveryRepo, NewMockBookingRepository(), NewMockDriverRepository(), nil)

	_, err := svc.UpdateDeliveryStatus(context.Background(), service.UpdateDeliveryStatusRequest{
		DeliveryID: "d-1",
		Status:     "teleported",
	})
	if !errors.Is(err, service.ErrInvalidDeliveryStatus) {
		t.Errorf("expected ErrInvalidDeliveryStatus, got: %v", err)
	}
}

func TestUpdateDeliveryStatus_CascadesDriverLocation(t *testing.T) {
	t.Parallel()

	deliveryRepo := NewMockDeliveryRepository()
	addedDelivery(deliveryRepo, "d-1", "b-1", domain.DeliveryStatusPickedUp)

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusInProgress, time.Now(), time.Now().Add(time.Hour))
	booking.DriverID = "driver-1"
	bookingRepo.AddBooking(booking)

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", VendorID: "vendor-1", IsAvailable: true})

	locationStore := NewMockLocationStore()
	svc := newDeliveryService(deliveryRepo, bookingRepo, driverRepo, locationStore)

	_, err := svc.UpdateDeliveryStatus(context.Background(), service.UpdateDeliveryStatusRequest{
		DeliveryID:        "d-1",
		Status:            domain.DeliveryStatusInTransit,
		DriverLat:         -6.2444,
		DriverLng:         106.8006,
		HasDriverLocation: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	driver := driverRepo.GetDriver("driver-1")
	if !driver.HasLocation || driver.CurrentLat != -6.2444 {
		t.Errorf("expected driver coordinates to be updated, got %+v", driver)
	}
	if !locationStore.HasPosition("driver-1") {
		t.Error("expected driver position to be mirrored")
	}
}

// ──────────────────────────────────────────────
// 3. TRACKING
// ──────────────────────────────────────────────

func TestTrackDelivery_HistoryMatchesStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		status     domain.DeliveryStatus
		wantEvents int
	}{
		{name: "pending has only placement", status: domain.DeliveryStatusPending, wantEvents: 1},
		{name: "picked_up has two events", status: domain.DeliveryStatusPickedUp, wantEvents: 2},
		{name: "in_transit has three events", status: domain.DeliveryStatusInTransit, wantEvents: 3},
		{name: "delivered has full timeline", status: domain.DeliveryStatusDelivered, wantEvents: 4},
		{name: "failed shows only placement", status: domain.DeliveryStatusFailed, wantEvents: 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deliveryRepo := NewMockDeliveryRepository()
			addedDelivery(deliveryRepo, "d-1", "b-1", tc.status)

			bookingRepo := NewMockBookingRepository()
			bookingRepo.AddBooking(existingBooking("b-1", "vehicle-1", domain.BookingStatusInProgress, time.Now(), time.Now().Add(time.Hour)))

			svc := newDeliveryService(deliveryRepo, bookingRepo, NewMockDriverRepository(), nil)

			info, err := svc.TrackDelivery(context.Background(), "DEL1748700000000123")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if len(info.History) != tc.wantEvents {
				t.Errorf("expected %d events, got %d", tc.wantEvents, len(info.History))
			}

			// Most recent first.
			for i := 1; i < len(info.History); i++ {
				if info.History[i].Timestamp.After(info.History[i-1].Timestamp) {
					t.Errorf("history not sorted most-recent-first at index %d", i)
				}
			}

			if info.StatusDescription == "" || info.StatusDescription == "Status unknown" {
				t.Errorf("unexpected status description %q", info.StatusDescription)
			}
		})
	}
}

func TestGetDeliveryByTrackingNumber(t *testing.T) {
	t.Parallel()

	deliveryRepo := NewMockDeliveryRepository()
	addedDelivery(deliveryRepo, "d-1", "b-1", domain.DeliveryStatusPending)

	svc := newDeliveryService(deliveryRepo, NewMockBookingRepository(), NewMockDriverRepository(), nil)

	detail, err := svc.GetDeliveryByTrackingNumber(context.Background(), "DEL1748700000000123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if detail.Delivery.ID != "d-1" {
		t.Errorf("expected delivery d-1, got %s", detail.Delivery.ID)
	}

	if _, err := svc.GetDeliveryByTrackingNumber(context.Background(), ""); !errors.Is(err, service.ErrInvalidTrackingNumber) {
		t.Errorf("expected ErrInvalidTrackingNumber, got: %v", err)
	}
}

func TestTrackDelivery_UnknownTrackingNumber_Fails(t *testing.T) {
	t.Parallel()

	svc := newDeliveryService(NewMockDeliveryRepository(), NewMockBookingRepository(), NewMockDriverRepository(), nil)

	_, err := svc.TrackDelivery(context.Background(), "DEL0000000000000000")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestTrackDelivery_IncludesDriverPosition(t *testing.T) {
	t.Parallel()

	deliveryRepo := NewMockDeliveryRepository()
	addedDelivery(deliveryRepo, "d-1", "b-1", domain.DeliveryStatusInTransit)

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusInProgress, time.Now(), time.Now().Add(time.Hour))
	booking.DriverID = "driver-1"
	bookingRepo.AddBooking(booking)

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{
		ID:          "driver-1",
		CurrentLat:  -6.21,
		CurrentLng:  106.82,
		HasLocation: true,
	})

	// Empty mirror: the lookup must fall back to the driver record.
	svc := newDeliveryService(deliveryRepo, bookingRepo, driverRepo, NewMockLocationStore())

	info, err := svc.TrackDelivery(context.Background(), "DEL1748700000000123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if info.DriverPosition == nil {
		t.Fatal("expected driver position from fallback")
	}
	if info.DriverPosition.Lat != -6.21 {
		t.Errorf("expected lat -6.21, got %v", info.DriverPosition.Lat)
	}
}
