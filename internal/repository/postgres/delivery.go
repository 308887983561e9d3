package postgres

import (
	"context"
	"database/sql"
	"errors"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// DeliveryRepository is a PostgreSQL implementation of repository.DeliveryRepository.
type DeliveryRepository struct {
	q Querier
}

// NewDeliveryRepository creates a new PostgreSQL delivery repository.
func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{q: db}
}

// NewDeliveryRepositoryWithTx creates a delivery repository using a transaction.
func NewDeliveryRepositoryWithTx(tx *sql.Tx) *DeliveryRepository {
	return &DeliveryRepository{q: tx}
}

const deliveryColumns = `id, booking_id, sender_name, sender_phone, sender_address,
	recipient_name, recipient_phone, recipient_address, package_description, package_weight,
	package_dimensions, delivery_priority, delivery_status, estimated_delivery_time,
	actual_delivery_time, delivery_fee, tips, special_instructions, tracking_number, created_at`

// Create persists a new delivery.
func (r *DeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	var dimensions, instructions sql.NullString
	if delivery.PackageDimensions != "" {
		dimensions = sql.NullString{String: delivery.PackageDimensions, Valid: true}
	}
	if delivery.SpecialInstructions != "" {
		instructions = sql.NullString{String: delivery.SpecialInstructions, Valid: true}
	}

	var actualTime sql.NullTime
	if !delivery.ActualDeliveryTime.IsZero() {
		actualTime = sql.NullTime{Time: delivery.ActualDeliveryTime, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		delivery.ID,
		delivery.BookingID,
		delivery.SenderName,
		delivery.SenderPhone,
		delivery.SenderAddress,
		delivery.RecipientName,
		delivery.RecipientPhone,
		delivery.RecipientAddress,
		delivery.PackageDescription,
		delivery.PackageWeight,
		dimensions,
		delivery.Priority,
		delivery.Status,
		delivery.EstimatedDeliveryTime,
		actualTime,
		delivery.DeliveryFee,
		delivery.Tips,
		instructions,
		delivery.TrackingNumber,
		delivery.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// scanDelivery scans a delivery row from any row scanner.
func scanDelivery(scan func(dest ...any) error) (*domain.Delivery, error) {
	var delivery domain.Delivery
	var dimensions, instructions sql.NullString
	var actualTime sql.NullTime

	err := scan(
		&delivery.ID,
		&delivery.BookingID,
		&delivery.SenderName,
		&delivery.SenderPhone,
		&delivery.SenderAddress,
		&delivery.RecipientName,
		&delivery.RecipientPhone,
		&delivery.RecipientAddress,
		&delivery.PackageDescription,
		&delivery.PackageWeight,
		&dimensions,
		&delivery.Priority,
		&delivery.Status,
		&delivery.EstimatedDeliveryTime,
		&actualTime,
		&delivery.DeliveryFee,
		&delivery.Tips,
		&instructions,
		&delivery.TrackingNumber,
		&delivery.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dimensions.Valid {
		delivery.PackageDimensions = dimensions.String
	}
	if instructions.Valid {
		delivery.SpecialInstructions = instructions.String
	}
	if actualTime.Valid {
		delivery.ActualDeliveryTime = actualTime.Time
	}

	return &delivery, nil
}

// GetByID retrieves a delivery by ID.
func (r *DeliveryRepository) GetByID(ctx context.Context, id string) (*domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByTrackingNumber retrieves a delivery by its tracking number.
func (r *DeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE tracking_number = $1`
	return r.getOne(ctx, query, trackingNumber)
}

func (r *DeliveryRepository) getOne(ctx context.Context, query string, arg any) (*domain.Delivery, error) {
	row := r.q.QueryRowContext(ctx, query, arg)
	delivery, err := scanDelivery(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return delivery, nil
}

// GetByBookingID retrieves the delivery attached to a booking, or nil when
// the booking has none.
func (r *DeliveryRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE booking_id = $1`

	delivery, err := r.getOne(ctx, query, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return delivery, err
}

// GetDetailByID retrieves a delivery with its parent booking resolved.
func (r *DeliveryRepository) GetDetailByID(ctx context.Context, id string) (*domain.DeliveryDetail, error) {
	delivery, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bookingRepo := &BookingRepository{q: r.q}
	booking, err := bookingRepo.GetDetailByID(ctx, delivery.BookingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return &domain.DeliveryDetail{Delivery: delivery, Booking: booking}, nil
}

// Update updates an existing delivery.
func (r *DeliveryRepository) Update(ctx context.Context, delivery *domain.Delivery) error {
	query := `
		UPDATE deliveries
		SET delivery_status = $1, actual_delivery_time = $2, delivery_fee = $3, tips = $4
		WHERE id = $5
	`

	var actualTime sql.NullTime
	if !delivery.ActualDeliveryTime.IsZero() {
		actualTime = sql.NullTime{Time: delivery.ActualDeliveryTime, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		delivery.Status,
		actualTime,
		delivery.DeliveryFee,
		delivery.Tips,
		delivery.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
