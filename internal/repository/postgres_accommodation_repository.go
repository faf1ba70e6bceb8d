package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aoacon/conference-backend/internal/database"
	"github.com/aoacon/conference-backend/internal/domain"
)

// counterBookings is the counters-table row backing the ACC-NNNN sequence
const counterBookings = "booking_number"

// PostgresAccommodationRepository implements AccommodationRepository
// using PostgreSQL
type PostgresAccommodationRepository struct {
	db *database.PostgresDB
}

// NewPostgresAccommodationRepository creates a new PostgreSQL
// accommodation repository
func NewPostgresAccommodationRepository(db *database.PostgresDB) *PostgresAccommodationRepository {
	return &PostgresAccommodationRepository{db: db}
}

// Create creates an accommodation property
func (r *PostgresAccommodationRepository) Create(ctx context.Context, acc *domain.Accommodation) error {
	query := `
		INSERT INTO accommodations (
			id, name, description, location, price_per_night, total_rooms,
			available_rooms, amenities, check_in_time, check_out_time,
			rating, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err := r.db.Pool().Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.Description,
		acc.Location,
		acc.PricePerNight,
		acc.TotalRooms,
		acc.AvailableRooms,
		acc.Amenities,
		acc.CheckInTime,
		acc.CheckOutTime,
		acc.Rating,
		acc.IsActive,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}
	return nil
}

// GetByID retrieves an accommodation by id
func (r *PostgresAccommodationRepository) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	query := accommodationSelectColumns + ` WHERE id = $1`
	return r.scanAccommodation(r.db.Pool().QueryRow(ctx, query, id))
}

// ListActive retrieves all active accommodations
func (r *PostgresAccommodationRepository) ListActive(ctx context.Context) ([]*domain.Accommodation, error) {
	query := accommodationSelectColumns + ` WHERE is_active ORDER BY name`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accommodations: %w", err)
	}
	defer rows.Close()

	var accs []*domain.Accommodation
	for rows.Next() {
		acc, err := r.scanAccommodation(rows)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accommodations: %w", err)
	}
	return accs, nil
}

// CreateBooking inserts a booking and decrements available rooms in one
// transaction. The decrement only succeeds while enough rooms remain,
// so concurrent bookings cannot oversell the property.
func (r *PostgresAccommodationRepository) CreateBooking(ctx context.Context, booking *domain.AccommodationBooking) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE accommodations
		 SET available_rooms = available_rooms - $2, updated_at = now()
		 WHERE id = $1 AND is_active AND available_rooms >= $2`,
		booking.AccommodationID, booking.RoomsBooked,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve rooms: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accommodations WHERE id = $1 AND is_active)`,
			booking.AccommodationID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check accommodation: %w", err)
		}
		if !exists {
			return domain.ErrAccommodationNotFound
		}
		return domain.ErrNotEnoughRooms
	}

	var seq int64
	if err := tx.QueryRow(ctx, nextCounterValue, counterBookings).Scan(&seq); err != nil {
		return fmt.Errorf("failed to advance booking counter: %w", err)
	}
	booking.BookingNumber = domain.FormatBookingNumber(seq)

	query := `
		INSERT INTO accommodation_bookings (
			id, booking_number, user_id, accommodation_id, check_in_date,
			check_out_date, number_of_nights, number_of_guests, rooms_booked,
			total_amount, payment_status, booking_status, special_requests,
			gateway_order_id, gateway_payment_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.BookingNumber,
		booking.UserID,
		booking.AccommodationID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.NumberOfNights,
		booking.NumberOfGuests,
		booking.RoomsBooked,
		booking.TotalAmount,
		string(booking.PaymentStatus),
		string(booking.BookingStatus),
		booking.SpecialRequests,
		booking.GatewayOrderID,
		booking.GatewayPaymentID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by id
func (r *PostgresAccommodationRepository) GetBookingByID(ctx context.Context, id string) (*domain.AccommodationBooking, error) {
	query := bookingSelectColumns + ` WHERE id = $1`
	return r.scanBooking(r.db.Pool().QueryRow(ctx, query, id))
}

// GetBookingsByUserID retrieves all bookings for a user
func (r *PostgresAccommodationRepository) GetBookingsByUserID(ctx context.Context, userID string) ([]*domain.AccommodationBooking, error) {
	query := bookingSelectColumns + ` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*domain.AccommodationBooking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// SetBookingGatewayOrder records the gateway order id for a booking
func (r *PostgresAccommodationRepository) SetBookingGatewayOrder(ctx context.Context, id, gatewayOrderID string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE accommodation_bookings SET gateway_order_id = $2, updated_at = now() WHERE id = $1`,
		id, gatewayOrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to set gateway order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// MarkBookingPaid transitions a pending booking to PAID and CONFIRMED
func (r *PostgresAccommodationRepository) MarkBookingPaid(ctx context.Context, id, gatewayPaymentID string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE accommodation_bookings
		 SET payment_status = 'PAID', booking_status = 'CONFIRMED',
		     gateway_payment_id = $2, updated_at = now()
		 WHERE id = $1 AND payment_status = 'PENDING'`,
		id, gatewayPaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, id, domain.PaymentStatePaid)
	}
	return nil
}

// MarkBookingFailed transitions a pending booking to FAILED
func (r *PostgresAccommodationRepository) MarkBookingFailed(ctx context.Context, id string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE accommodation_bookings
		 SET payment_status = 'FAILED', updated_at = now()
		 WHERE id = $1 AND payment_status = 'PENDING'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark booking failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, id, domain.PaymentStateFailed)
	}
	return nil
}

func (r *PostgresAccommodationRepository) resolveMissedUpdate(ctx context.Context, id string, wanted domain.PaymentState) error {
	booking, err := r.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.PaymentStatus == wanted {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidPaymentStatus, booking.PaymentStatus, wanted)
}

const accommodationSelectColumns = `
	SELECT id, name, description, location, price_per_night, total_rooms,
	       available_rooms, amenities, check_in_time, check_out_time,
	       rating, is_active, created_at, updated_at
	FROM accommodations`

func (r *PostgresAccommodationRepository) scanAccommodation(row pgx.Row) (*domain.Accommodation, error) {
	var acc domain.Accommodation

	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Description,
		&acc.Location,
		&acc.PricePerNight,
		&acc.TotalRooms,
		&acc.AvailableRooms,
		&acc.Amenities,
		&acc.CheckInTime,
		&acc.CheckOutTime,
		&acc.Rating,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("failed to scan accommodation: %w", err)
	}
	return &acc, nil
}

const bookingSelectColumns = `
	SELECT id, booking_number, user_id, accommodation_id, check_in_date,
	       check_out_date, number_of_nights, number_of_guests, rooms_booked,
	       total_amount, payment_status, booking_status, special_requests,
	       gateway_order_id, gateway_payment_id, created_at, updated_at
	FROM accommodation_bookings`

func (r *PostgresAccommodationRepository) scanBooking(row pgx.Row) (*domain.AccommodationBooking, error) {
	var booking domain.AccommodationBooking
	var paymentStatus, bookingStatus string

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.UserID,
		&booking.AccommodationID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.NumberOfNights,
		&booking.NumberOfGuests,
		&booking.RoomsBooked,
		&booking.TotalAmount,
		&paymentStatus,
		&bookingStatus,
		&booking.SpecialRequests,
		&booking.GatewayOrderID,
		&booking.GatewayPaymentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	booking.PaymentStatus = domain.PaymentState(paymentStatus)
	booking.BookingStatus = domain.BookingStatus(bookingStatus)
	return &booking, nil
}
