package repository

import (
	"context"

	"github.com/aoacon/conference-backend/internal/domain"
)

// AccommodationRepository defines the interface for accommodation and
// booking data access
type AccommodationRepository interface {
	// Create creates an accommodation property
	Create(ctx context.Context, acc *domain.Accommodation) error

	// GetByID retrieves an accommodation by id
	GetByID(ctx context.Context, id string) (*domain.Accommodation, error)

	// ListActive retrieves all active accommodations
	ListActive(ctx context.Context) ([]*domain.Accommodation, error)

	// CreateBooking inserts a booking and decrements the property's
	// available rooms in one transaction. The decrement is conditional
	// on enough rooms remaining; returns ErrNotEnoughRooms otherwise.
	CreateBooking(ctx context.Context, booking *domain.AccommodationBooking) error

	// GetBookingByID retrieves a booking by id
	GetBookingByID(ctx context.Context, id string) (*domain.AccommodationBooking, error)

	// GetBookingsByUserID retrieves all bookings for a user
	GetBookingsByUserID(ctx context.Context, userID string) ([]*domain.AccommodationBooking, error)

	// SetBookingGatewayOrder records the gateway order id for a booking
	SetBookingGatewayOrder(ctx context.Context, id, gatewayOrderID string) error

	// MarkBookingPaid transitions a pending booking to PAID and
	// CONFIRMED. Applying it to an already paid booking is a no-op.
	MarkBookingPaid(ctx context.Context, id, gatewayPaymentID string) error

	// MarkBookingFailed transitions a pending booking to FAILED. A paid
	// booking is never reverted.
	MarkBookingFailed(ctx context.Context, id string) error
}
