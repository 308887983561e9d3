package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"motorent/internal/domain"
	"motorent/internal/redis"
	"motorent/internal/repository"
	"motorent/internal/repository/postgres"
)

// DeliveryService handles parcel deliveries attached to bookings.
type DeliveryService struct {
	db            *sql.DB
	deliveryRepo  repository.DeliveryRepository
	bookingRepo   repository.BookingRepository
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface
	cacheStore    redis.CacheStoreInterface
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(
	db *sql.DB,
	deliveryRepo repository.DeliveryRepository,
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore redis.CacheStoreInterface,
) *DeliveryService {
	return &DeliveryService{
		db:            db,
		deliveryRepo:  deliveryRepo,
		bookingRepo:   bookingRepo,
		driverRepo:    driverRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
	}
}

// CreateDeliveryRequest contains the parameters for creating a delivery.
type CreateDeliveryRequest struct {
	BookingID           string
	SenderName          string
	SenderPhone         string
	SenderAddress       string
	RecipientName       string
	RecipientPhone      string
	RecipientAddress    string
	PackageDescription  string
	PackageWeight       float64
	PackageDimensions   string
	Priority            domain.DeliveryPriority
	DeliveryFee         float64
	SpecialInstructions string
}

// CreateDelivery attaches a delivery to an existing booking. A booking can
// carry at most one delivery; the delivery fee is added to the booking total
// in the same transaction as the insert so the two never diverge.
func (s *DeliveryService) CreateDelivery(ctx context.Context, req CreateDeliveryRequest) (*domain.DeliveryDetail, error) {
	if req.BookingID == "" || req.SenderName == "" || req.SenderPhone == "" || req.SenderAddress == "" ||
		req.RecipientName == "" || req.RecipientPhone == "" || req.RecipientAddress == "" ||
		req.PackageDescription == "" {
		return nil, ErrMissingDeliveryFields
	}

	bookingTotal, err := s.bookingTotal(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.deliveryRepo.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDeliveryExists
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.DeliveryPriorityStandard
	}

	fee := req.DeliveryFee
	if fee < 0 {
		fee = 0
	}

	now := time.Now()
	delivery := &domain.Delivery{
		ID:                    uuid.New().String(),
		BookingID:             req.BookingID,
		SenderName:            req.SenderName,
		SenderPhone:           req.SenderPhone,
		SenderAddress:         req.SenderAddress,
		RecipientName:         req.RecipientName,
		RecipientPhone:        req.RecipientPhone,
		RecipientAddress:      req.RecipientAddress,
		PackageDescription:    req.PackageDescription,
		PackageWeight:         req.PackageWeight,
		PackageDimensions:     req.PackageDimensions,
		Priority:              priority,
		Status:                domain.DeliveryStatusPending,
		EstimatedDeliveryTime: EstimateDeliveryTime(priority, now),
		DeliveryFee:           fee,
		SpecialInstructions:   req.SpecialInstructions,
		TrackingNumber:        newTrackingNumber(),
		CreatedAt:             now,
	}

	newTotal := ApplyDeliveryFee(bookingTotal, fee)

	if err := s.createAttached(ctx, delivery, newTotal); err != nil {
		return nil, err
	}

	// The fee changed the booking total; drop the stale cache entry.
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateBooking(ctx, delivery.BookingID)
	}

	return s.deliveryRepo.GetDetailByID(ctx, delivery.ID)
}

// bookingTotal resolves the parent booking's current total, consulting the
// booking cache before the repository. Cache errors are treated as misses.
func (s *DeliveryService) bookingTotal(ctx context.Context, bookingID string) (float64, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetBooking(ctx, bookingID)
		if err == nil && cached != nil {
			return cached.TotalAmount, nil
		}
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	return booking.TotalAmount, nil
}

// createAttached inserts the delivery and bumps the booking total in one
// transaction when a database handle is present.
func (s *DeliveryService) createAttached(ctx context.Context, delivery *domain.Delivery, newTotal float64) error {
	if s.db == nil {
		if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
			return err
		}
		return s.bookingRepo.UpdateTotalAmount(ctx, delivery.BookingID, newTotal)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txDeliveryRepo := postgres.NewDeliveryRepositoryWithTx(tx)
	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)

	if err = txDeliveryRepo.Create(ctx, delivery); err != nil {
		return err
	}

	if err = txBookingRepo.UpdateTotalAmount(ctx, delivery.BookingID, newTotal); err != nil {
		return err
	}

	return tx.Commit()
}

// newTrackingNumber generates a delivery tracking number. Uniqueness is
// backed by the column's unique constraint; the millisecond timestamp plus a
// random suffix makes collisions effectively impossible within one process.
func newTrackingNumber() string {
	return fmt.Sprintf("DEL%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// GetDelivery retrieves a delivery by ID with its parent booking resolved.
func (s *DeliveryService) GetDelivery(ctx context.Context, deliveryID string) (*domain.DeliveryDetail, error) {
	if deliveryID == "" {
		return nil, ErrInvalidDeliveryID
	}
	return s.deliveryRepo.GetDetailByID(ctx, deliveryID)
}

// GetDeliveryByTrackingNumber retrieves a delivery by tracking number with
// its parent booking resolved.
func (s *DeliveryService) GetDeliveryByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.DeliveryDetail, error) {
	if trackingNumber == "" {
		return nil, ErrInvalidTrackingNumber
	}

	delivery, err := s.deliveryRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return s.deliveryRepo.GetDetailByID(ctx, delivery.ID)
}

// TrackingInfo is the public view of a delivery's progress.
type TrackingInfo struct {
	Delivery          *domain.Delivery
	History           []domain.TrackingEvent
	StatusDescription string
	DriverPosition    *redis.DriverPosition // nil when no driver or no position known
}

// TrackDelivery resolves a tracking number into the delivery, its synthesized
// history and the assigned driver's last known position. The position is read
// from the Redis mirror first and falls back to the driver record.
func (s *DeliveryService) TrackDelivery(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	if trackingNumber == "" {
		return nil, ErrInvalidTrackingNumber
	}

	delivery, err := s.deliveryRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	info := &TrackingInfo{
		Delivery:          delivery,
		History:           BuildTrackingHistory(delivery, time.Now()),
		StatusDescription: StatusDescription(delivery.Status),
	}

	booking, err := s.bookingRepo.GetByID(ctx, delivery.BookingID)
	if err == nil && booking.DriverID != "" {
		info.DriverPosition = s.driverPosition(ctx, booking.DriverID)
	}

	return info, nil
}

// driverPosition looks up a driver's last known coordinates, preferring the
// Redis mirror.
func (s *DeliveryService) driverPosition(ctx context.Context, driverID string) *redis.DriverPosition {
	if s.locationStore != nil {
		pos, err := s.locationStore.GetPosition(ctx, driverID)
		if err == nil && pos != nil {
			return pos
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil || !driver.HasLocation {
		return nil
	}
	return &redis.DriverPosition{
		DriverID: driver.ID,
		Lat:      driver.CurrentLat,
		Lng:      driver.CurrentLng,
	}
}

// UpdateDeliveryStatusRequest contains the parameters for a status update.
// Driver coordinates, when present, cascade to the assigned driver.
type UpdateDeliveryStatusRequest struct {
	DeliveryID        string
	Status            domain.DeliveryStatus
	DriverLat         float64
	DriverLng         float64
	HasDriverLocation bool
}

// UpdateDeliveryStatus updates a delivery's status. Reaching delivered stamps
// the actual delivery time. When driver coordinates are supplied, the
// assigned driver's position is updated in the database and mirrored to
// Redis for tracking lookups.
func (s *DeliveryService) UpdateDeliveryStatus(ctx context.Context, req UpdateDeliveryStatusRequest) (*domain.Delivery, error) {
	if req.DeliveryID == "" {
		return nil, ErrInvalidDeliveryID
	}

	switch req.Status {
	case domain.DeliveryStatusPending, domain.DeliveryStatusPickedUp, domain.DeliveryStatusInTransit,
		domain.DeliveryStatusDelivered, domain.DeliveryStatusFailed:
	default:
		return nil, ErrInvalidDeliveryStatus
	}

	delivery, err := s.deliveryRepo.GetByID(ctx, req.DeliveryID)
	if err != nil {
		return nil, err
	}

	delivery.Status = req.Status
	if req.Status == domain.DeliveryStatusDelivered && delivery.ActualDeliveryTime.IsZero() {
		delivery.ActualDeliveryTime = time.Now()
	}

	if err := s.deliveryRepo.Update(ctx, delivery); err != nil {
		return nil, err
	}

	if req.HasDriverLocation {
		s.cascadeDriverLocation(ctx, delivery.BookingID, req.DriverLat, req.DriverLng)
	}

	return delivery, nil
}

// cascadeDriverLocation updates the assigned driver's coordinates. Failures
// are swallowed: the status update has already committed and a stale driver
// position is acceptable.
func (s *DeliveryService) cascadeDriverLocation(ctx context.Context, bookingID string, lat, lng float64) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil || booking.DriverID == "" {
		return
	}

	_ = s.driverRepo.UpdateLocation(ctx, booking.DriverID, lat, lng)

	if s.locationStore != nil {
		_ = s.locationStore.SetPosition(ctx, &redis.DriverPosition{
			DriverID:  booking.DriverID,
			Lat:       lat,
			Lng:       lng,
			UpdatedAt: time.Now(),
		})
	}
}
