package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"motorent/internal/domain"
	"motorent/internal/redis"
	"motorent/internal/repository"
	"motorent/internal/repository/postgres"
)

const vehicleBookingLockTTL = 10 * time.Second

// BookingService orchestrates the booking lifecycle: availability check,
// pricing, persistence, status transitions and payment.
type BookingService struct {
	db           *sql.DB
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	availability *AvailabilityChecker
	lockStore    redis.LockStoreInterface
	cacheStore   redis.CacheStoreInterface
	gateway      PaymentGateway
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	db *sql.DB,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	availability *AvailabilityChecker,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	gateway PaymentGateway,
) *BookingService {
	return &BookingService{
		db:           db,
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		availability: availability,
		lockStore:    lockStore,
		cacheStore:   cacheStore,
		gateway:      gateway,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	UserID          string
	VehicleID       string
	DriverID        string // optional
	BookingType     domain.BookingType
	StartDate       time.Time
	EndDate         time.Time
	PickupLat       float64
	PickupLng       float64
	DropoffLat      float64
	DropoffLng      float64
	SpecialRequests string
}

// CreateBooking creates a new booking in pending/pending state.
//
// The availability precheck alone leaves a race window between two concurrent
// requests for the same vehicle; a short vehicle lock serializes concurrent
// attempts on this vehicle across processes, and the conflict check is
// repeated inside a serializable transaction so the insert and the check
// commit atomically.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.BookingDetail, error) {
	if req.UserID == "" || req.VehicleID == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, ErrMissingBookingFields
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, req.VehicleID, vehicleBookingLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrBookingLocked
		}
		defer func() { _ = s.lockStore.ReleaseVehicleLock(ctx, req.VehicleID) }()
	}

	rate, err := s.vehicleHourlyRate(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	total, err := ComputeRentalTotal(req.StartDate, req.EndDate, rate)
	if err != nil {
		return nil, err
	}

	available, err := s.availability.IsAvailable(ctx, req.VehicleID, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrVehicleUnavailable
	}

	bookingType := req.BookingType
	if bookingType == "" {
		bookingType = domain.BookingTypeRental
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		DriverID:        req.DriverID,
		BookingType:     bookingType,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DropoffLat:      req.DropoffLat,
		DropoffLng:      req.DropoffLng,
		TotalHours:      RentalHours(req.StartDate, req.EndDate),
		TotalAmount:     total,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.createChecked(ctx, booking); err != nil {
		return nil, err
	}

	s.cacheBooking(ctx, booking)

	return s.bookingRepo.GetDetailByID(ctx, booking.ID)
}

// vehicleHourlyRate resolves the rate used for pricing, consulting the
// vehicle cache before the repository. Cache errors are treated as misses; a
// repository hit primes the cache for subsequent bookings of the same vehicle.
func (s *BookingService) vehicleHourlyRate(ctx context.Context, vehicleID string) (float64, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetVehicle(ctx, vehicleID)
		if err == nil && cached != nil {
			return cached.HourlyRate, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return 0, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetVehicle(ctx, &redis.CachedVehicle{
			ID:          vehicle.ID,
			VendorID:    vehicle.VendorID,
			VehicleType: string(vehicle.VehicleType),
			HourlyRate:  vehicle.HourlyRate,
			DailyRate:   vehicle.DailyRate,
			IsAvailable: vehicle.IsAvailable,
		})
	}

	return vehicle.HourlyRate, nil
}

// createChecked inserts the booking, re-validating the availability invariant
// inside a serializable transaction when a database handle is present.
func (s *BookingService) createChecked(ctx context.Context, booking *domain.Booking) error {
	if s.db == nil {
		return s.bookingRepo.Create(ctx, booking)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)

	var conflicts []*domain.Booking
	conflicts, err = txBookingRepo.FindConflicting(ctx, booking.VehicleID, booking.StartDate, booking.EndDate, "")
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		err = ErrVehicleUnavailable
		return err
	}

	if err = txBookingRepo.Create(ctx, booking); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBooking retrieves a booking with its related records resolved.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.BookingDetail, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetDetailByID(ctx, bookingID)
}

// BookingPage is one page of a user's bookings.
type BookingPage struct {
	Bookings []*domain.BookingDetail
	Total    int
	Page     int
	Pages    int
	Limit    int
}

// ListUserBookings returns a page of a user's bookings, newest first,
// optionally filtered by status.
func (s *BookingService) ListUserBookings(ctx context.Context, userID string, status domain.BookingStatus, page, limit int) (*BookingPage, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.BookingFilter{
		UserID: userID,
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.bookingRepo.CountByUser(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return &BookingPage{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		Pages:    pages,
		Limit:    limit,
	}, nil
}

// UpdateStatusRequest contains the fields of a partial status update. Empty
// fields are left unchanged.
type UpdateStatusRequest struct {
	BookingID     string
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
}

// UpdateStatus applies a partial update to a booking's status and payment
// status, each validated against its transition table.
func (s *BookingService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !CanTransition(booking.Status, req.Status) {
			return nil, ErrInvalidStatusTransition
		}
		booking.Status = req.Status
	}

	if req.PaymentStatus != "" {
		if !CanTransitionPayment(booking.PaymentStatus, req.PaymentStatus) {
			return nil, ErrInvalidPaymentTransition
		}
		booking.PaymentStatus = req.PaymentStatus
	}

	booking.UpdatedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateBookingCache(ctx, booking.ID)

	return booking, nil
}

// ProcessPaymentRequest contains the parameters for processing a payment.
type ProcessPaymentRequest struct {
	BookingID string
	Method    domain.PaymentMethod
	Amount    float64
}

// ProcessPaymentResponse contains the updated booking and the synthesized
// transaction record.
type ProcessPaymentResponse struct {
	Booking     *domain.Booking
	Transaction *domain.Transaction
}

// ProcessPayment charges a booking through the gateway port. On approval the
// booking moves to confirmed/paid and a transaction record is synthesized
// from the gateway response. A zero amount charges the booking total.
func (s *BookingService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	if _, err := ValidPaymentMethod(string(req.Method)); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(booking.Status, domain.BookingStatusConfirmed) {
		return nil, ErrInvalidStatusTransition
	}
	if !CanTransitionPayment(booking.PaymentStatus, domain.PaymentStatusPaid) {
		return nil, ErrInvalidPaymentTransition
	}

	amount := req.Amount
	if amount <= 0 {
		amount = booking.TotalAmount
	}

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		BookingID: booking.ID,
		Amount:    amount,
		Method:    req.Method,
	})
	if err != nil {
		return nil, err
	}

	booking.PaymentStatus = domain.PaymentStatusPaid
	booking.Status = domain.BookingStatusConfirmed
	booking.PaymentMethod = req.Method
	booking.UpdatedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateBookingCache(ctx, booking.ID)

	transaction := &domain.Transaction{
		ID:               result.TransactionID,
		BookingID:        booking.ID,
		Amount:           amount,
		PaymentMethod:    req.Method,
		Status:           "completed",
		TransactionDate:  result.ProcessedAt,
		GatewayReference: result.GatewayReference,
	}

	return &ProcessPaymentResponse{
		Booking:     booking,
		Transaction: transaction,
	}, nil
}

// cacheBooking mirrors the booking's hot fields into Redis. Failures are
// ignored; the cache is an optimization over the repository, never the source
// of truth.
func (s *BookingService) cacheBooking(ctx context.Context, booking *domain.Booking) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.SetBooking(ctx, &redis.CachedBooking{
		ID:            booking.ID,
		UserID:        booking.UserID,
		VehicleID:     booking.VehicleID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		TotalAmount:   booking.TotalAmount,
	})
}

func (s *BookingService) invalidateBookingCache(ctx context.Context, bookingID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateBooking(ctx, bookingID)
}
