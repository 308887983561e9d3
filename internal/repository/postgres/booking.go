package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, user_id, vehicle_id, driver_id, booking_type, start_date, end_date,
	pickup_location_lat, pickup_location_lng, dropoff_location_lat, dropoff_location_lng,
	total_hours, total_amount, status, payment_status, payment_method, special_requests,
	created_at, updated_at`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	var driverID sql.NullString
	if booking.DriverID != "" {
		driverID = sql.NullString{String: booking.DriverID, Valid: true}
	}

	var paymentMethod sql.NullString
	if booking.PaymentMethod != "" {
		paymentMethod = sql.NullString{String: string(booking.PaymentMethod), Valid: true}
	}

	var specialRequests sql.NullString
	if booking.SpecialRequests != "" {
		specialRequests = sql.NullString{String: booking.SpecialRequests, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.VehicleID,
		driverID,
		booking.BookingType,
		booking.StartDate,
		booking.EndDate,
		booking.PickupLat,
		booking.PickupLng,
		booking.DropoffLat,
		booking.DropoffLng,
		booking.TotalHours,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentStatus,
		paymentMethod,
		specialRequests,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// scanBooking scans a booking row from any row scanner.
func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	var booking domain.Booking
	var driverID, paymentMethod, specialRequests sql.NullString

	err := scan(
		&booking.ID,
		&booking.UserID,
		&booking.VehicleID,
		&driverID,
		&booking.BookingType,
		&booking.StartDate,
		&booking.EndDate,
		&booking.PickupLat,
		&booking.PickupLng,
		&booking.DropoffLat,
		&booking.DropoffLng,
		&booking.TotalHours,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&paymentMethod,
		&specialRequests,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		booking.DriverID = driverID.String
	}
	if paymentMethod.Valid {
		booking.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	}
	if specialRequests.Valid {
		booking.SpecialRequests = specialRequests.String
	}

	return &booking, nil
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	booking, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetDetailByID retrieves a booking with user, vehicle, vendor, optional
// driver and optional delivery resolved.
func (r *BookingRepository) GetDetailByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.BookingDetail{Booking: booking}

	userRepo := &UserRepository{q: r.q}
	detail.User, err = userRepo.GetByID(ctx, booking.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	vehicleRepo := &VehicleRepository{q: r.q}
	vv, err := vehicleRepo.GetWithVendor(ctx, booking.VehicleID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	} else {
		detail.Vehicle = vv.Vehicle
		detail.Vendor = vv.Vendor
	}

	if booking.DriverID != "" {
		driverRepo := &DriverRepository{q: r.q}
		dw, err := driverRepo.GetWithUser(ctx, booking.DriverID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if dw != nil {
			detail.Driver = dw.Driver
			detail.DriverUser = dw.User
		}
	}

	deliveryRepo := &DeliveryRepository{q: r.q}
	detail.Delivery, err = deliveryRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// FindConflicting returns active bookings for the vehicle overlapping
// [start, end) under the half-open rule.
func (r *BookingRepository) FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('confirmed', 'in_progress')
		  AND start_date < $2
		  AND end_date > $3
		  AND ($4 = '' OR id <> $4)
	`

	rows, err := r.q.QueryContext(ctx, query, vehicleID, end, start, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// ListByUser returns a page of a user's bookings, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, filter repository.BookingFilter) ([]*domain.BookingDetail, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.q.QueryContext(ctx, query, filter.UserID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vehicleRepo := &VehicleRepository{q: r.q}
	driverRepo := &DriverRepository{q: r.q}

	details := make([]*domain.BookingDetail, 0, len(bookings))
	for _, booking := range bookings {
		detail := &domain.BookingDetail{Booking: booking}

		vv, err := vehicleRepo.GetWithVendor(ctx, booking.VehicleID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if vv != nil {
			detail.Vehicle = vv.Vehicle
			detail.Vendor = vv.Vendor
		}

		if booking.DriverID != "" {
			dw, err := driverRepo.GetWithUser(ctx, booking.DriverID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			if dw != nil {
				detail.Driver = dw.Driver
				detail.DriverUser = dw.User
			}
		}

		details = append(details, detail)
	}
	return details, nil
}

// CountByUser returns the number of bookings matching the filter.
func (r *BookingRepository) CountByUser(ctx context.Context, filter repository.BookingFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
	`

	var count int
	err := r.q.QueryRowContext(ctx, query, filter.UserID, string(filter.Status)).Scan(&count)
	return count, err
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET driver_id = $1, status = $2, payment_status = $3, payment_method = $4,
		    special_requests = $5, total_amount = $6, updated_at = $7
		WHERE id = $8
	`

	var driverID sql.NullString
	if booking.DriverID != "" {
		driverID = sql.NullString{String: booking.DriverID, Valid: true}
	}

	var paymentMethod sql.NullString
	if booking.PaymentMethod != "" {
		paymentMethod = sql.NullString{String: string(booking.PaymentMethod), Valid: true}
	}

	var specialRequests sql.NullString
	if booking.SpecialRequests != "" {
		specialRequests = sql.NullString{String: booking.SpecialRequests, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		driverID,
		booking.Status,
		booking.PaymentStatus,
		paymentMethod,
		specialRequests,
		booking.TotalAmount,
		booking.UpdatedAt,
		booking.ID,
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

// UpdateTotalAmount sets the booking's total amount.
func (r *BookingRepository) UpdateTotalAmount(ctx context.Context, id string, total float64) error {
	query := `UPDATE bookings SET total_amount = $1, updated_at = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, total, time.Now(), id)
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
