package tests

import (
	"context"
	"testing"
	"time"

	"motorent/internal/domain"
	"motorent/internal/redis"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// 1. VEHICLE CACHE READ-THROUGH
// ──────────────────────────────────────────────

func newBookingServiceWithCache(bookingRepo *MockBookingRepository, vehicleRepo *MockVehicleRepository, cache *MockCacheStore, gateway service.PaymentGateway) *service.BookingService {
	checker := service.NewAvailabilityChecker(bookingRepo)
	return service.NewBookingService(nil, bookingRepo, vehicleRepo, checker, NewMockLockStore(), cache, gateway)
}

func newDeliveryServiceWithCache(deliveryRepo *MockDeliveryRepository, bookingRepo *MockBookingRepository, cache *MockCacheStore) *service.DeliveryService {
	return service.NewDeliveryService(nil, deliveryRepo, bookingRepo, NewMockDriverRepository(), nil, cache)
}

func TestBookingCreation_CachedRate_SkipsVehicleLookup(t *testing.T) {
	t.Parallel()

	cache := NewMockCacheStore()
	cache.AddVehicle(&redis.CachedVehicle{
		ID:          "vehicle-1",
		VendorID:    "vendor-1",
		VehicleType: string(domain.VehicleTypeMotorbike),
		HourlyRate:  20000,
		IsAvailable: true,
	})

	// The repository is left empty: a fallthrough would fail with not found.
	svc := newBookingServiceWithCache(NewMockBookingRepository(), NewMockVehicleRepository(), cache, nil)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	detail, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if detail.Booking.TotalAmount != 40000 {
		t.Errorf("expected total 40000 from cached rate, got %v", detail.Booking.TotalAmount)
	}
	if cache.GetVehicleCallCount != 1 {
		t.Errorf("expected 1 cache read, got %d", cache.GetVehicleCallCount)
	}
}

func TestBookingCreation_CacheMiss_PrimesVehicleCache(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle("vehicle-1"))

	cache := NewMockCacheStore()
	svc := newBookingServiceWithCache(NewMockBookingRepository(), vehicleRepo, cache, nil)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	cached := cache.CachedVehicle("vehicle-1")
	if cached == nil {
		t.Fatal("expected vehicle cache to be primed after repository lookup")
	}
	if cached.HourlyRate != 15000 {
		t.Errorf("expected cached rate 15000, got %v", cached.HourlyRate)
	}
	if cache.SetVehicleCallCount != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.SetVehicleCallCount)
	}
}

func TestBookingCreation_CacheError_FallsBackToRepository(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle("vehicle-1"))

	cache := NewMockCacheStore()
	cache.GetError = ErrMockTimeout
	svc := newBookingServiceWithCache(NewMockBookingRepository(), vehicleRepo, cache, nil)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	detail, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("expected repository fallback, got: %v", err)
	}
	if detail.Booking.TotalAmount != 15000 {
		t.Errorf("expected total 15000 from repository rate, got %v", detail.Booking.TotalAmount)
	}
}

// ──────────────────────────────────────────────
// 2. BOOKING CACHE LIFECYCLE
// ──────────────────────────────────────────────

func TestBookingCreation_CachesBooking(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle("vehicle-1"))

	cache := NewMockCacheStore()
	svc := newBookingServiceWithCache(NewMockBookingRepository(), vehicleRepo, cache, nil)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	detail, err := svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:    "user-1",
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	cached := cache.CachedBooking(detail.Booking.ID)
	if cached == nil {
		t.Fatal("expected booking to be cached after creation")
	}
	if cached.TotalAmount != 60000 {
		t.Errorf("expected cached total 60000, got %v", cached.TotalAmount)
	}
	if cached.Status != string(domain.BookingStatusPending) {
		t.Errorf("expected cached status pending, got %s", cached.Status)
	}
}

func TestUpdateStatus_InvalidatesCachedBooking(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusPending, time.Now(), time.Now().Add(time.Hour))
	bookingRepo.AddBooking(booking)

	cache := NewMockCacheStore()
	cache.AddBooking(&redis.CachedBooking{ID: "b-1", Status: string(domain.BookingStatusPending)})

	svc := newBookingServiceWithCache(bookingRepo, NewMockVehicleRepository(), cache, nil)

	_, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b-1",
		Status:    domain.BookingStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cache.CachedBooking("b-1") != nil {
		t.Error("expected cached booking to be dropped after status update")
	}
	if cache.InvalidateBookingCallCount != 1 {
		t.Errorf("expected 1 invalidation, got %d", cache.InvalidateBookingCallCount)
	}
}

func TestProcessPayment_InvalidatesCachedBooking(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusPending, time.Now(), time.Now().Add(time.Hour))
	booking.PaymentStatus = domain.PaymentStatusPending
	booking.TotalAmount = 75000
	bookingRepo.AddBooking(booking)

	cache := NewMockCacheStore()
	cache.AddBooking(&redis.CachedBooking{ID: "b-1", TotalAmount: 75000})

	svc := newBookingServiceWithCache(bookingRepo, NewMockVehicleRepository(), cache, NewMockFailingGateway())

	_, err := svc.ProcessPayment(context.Background(), service.ProcessPaymentRequest{
		BookingID: "b-1",
		Method:    domain.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cache.CachedBooking("b-1") != nil {
		t.Error("expected cached booking to be dropped after payment")
	}
}

// ──────────────────────────────────────────────
// 3. DELIVERY FEE AND THE BOOKING CACHE
// ──────────────────────────────────────────────

func TestDeliveryCreation_UsesCachedBookingTotal(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, time.Now(), time.Now().Add(time.Hour))
	booking.TotalAmount = 999999 // A stale repo read would surface this value.
	bookingRepo.AddBooking(booking)

	cache := NewMockCacheStore()
	cache.AddBooking(&redis.CachedBooking{ID: "b-1", TotalAmount: 50000})

	svc := newDeliveryServiceWithCache(NewMockDeliveryRepository(), bookingRepo, cache)

	req := validDeliveryRequest("b-1")
	req.DeliveryFee = 15000

	if _, err := svc.CreateDelivery(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := bookingRepo.GetBooking("b-1").TotalAmount; got != 65000 {
		t.Errorf("expected total 65000 from cached base, got %v", got)
	}
	if cache.GetBookingCallCount != 1 {
		t.Errorf("expected 1 cache read, got %d", cache.GetBookingCallCount)
	}
}

func TestDeliveryCreation_InvalidatesBookingCache(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	booking := existingBooking("b-1", "vehicle-1", domain.BookingStatusConfirmed, time.Now(), time.Now().Add(time.Hour))
	booking.TotalAmount = 60000
	bookingRepo.AddBooking(booking)

	cache := NewMockCacheStore()
	cache.AddBooking(&redis.CachedBooking{ID: "b-1", TotalAmount: 60000})

	svc := newDeliveryServiceWithCache(NewMockDeliveryRepository(), bookingRepo, cache)

	req := validDeliveryRequest("b-1")
	req.DeliveryFee = 10000

	if _, err := svc.CreateDelivery(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// The fee changed the total; the cached entry must not survive.
	if cache.CachedBooking("b-1") != nil {
		t.Error("expected cached booking to be dropped after fee was applied")
	}
}
