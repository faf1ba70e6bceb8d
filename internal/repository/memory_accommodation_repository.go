package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aoacon/conference-backend/internal/domain"
)

// MemoryAccommodationRepository implements AccommodationRepository using
// in-memory storage. Useful for testing and development.
type MemoryAccommodationRepository struct {
	accommodations map[string]*domain.Accommodation
	bookings       map[string]*domain.AccommodationBooking
	byUser         map[string][]string
	seq            int64
	mu             sync.Mutex
}

// NewMemoryAccommodationRepository creates a new in-memory accommodation
// repository
func NewMemoryAccommodationRepository() *MemoryAccommodationRepository {
	return &MemoryAccommodationRepository{
		accommodations: make(map[string]*domain.Accommodation),
		bookings:       make(map[string]*domain.AccommodationBooking),
		byUser:         make(map[string][]string),
	}
}

// Create creates an accommodation property
func (r *MemoryAccommodationRepository) Create(ctx context.Context, acc *domain.Accommodation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *acc
	r.accommodations[acc.ID] = &stored
	return nil
}

// GetByID retrieves an accommodation by id
func (r *MemoryAccommodationRepository) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.accommodations[id]
	if !exists {
		return nil, domain.ErrAccommodationNotFound
	}
	out := *acc
	return &out, nil
}

// ListActive retrieves all active accommodations
func (r *MemoryAccommodationRepository) ListActive(ctx context.Context) ([]*domain.Accommodation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accs []*domain.Accommodation
	for _, acc := range r.accommodations {
		if acc.IsActive {
			out := *acc
			accs = append(accs, &out)
		}
	}
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].Name < accs[j].Name
	})
	return accs, nil
}

// CreateBooking inserts a booking and decrements available rooms
// atomically under the repository lock
func (r *MemoryAccommodationRepository) CreateBooking(ctx context.Context, booking *domain.AccommodationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.accommodations[booking.AccommodationID]
	if !exists || !acc.IsActive {
		return domain.ErrAccommodationNotFound
	}
	if acc.AvailableRooms < booking.RoomsBooked {
		return domain.ErrNotEnoughRooms
	}

	acc.AvailableRooms -= booking.RoomsBooked

	r.seq++
	booking.BookingNumber = domain.FormatBookingNumber(r.seq)

	stored := *booking
	r.bookings[booking.ID] = &stored
	r.byUser[booking.UserID] = append(r.byUser[booking.UserID], booking.ID)
	return nil
}

// GetBookingByID retrieves a booking by id
func (r *MemoryAccommodationRepository) GetBookingByID(ctx context.Context, id string) (*domain.AccommodationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, exists := r.bookings[id]
	if !exists {
		return nil, domain.ErrBookingNotFound
	}
	out := *booking
	return &out, nil
}

// GetBookingsByUserID retrieves all bookings for a user
func (r *MemoryAccommodationRepository) GetBookingsByUserID(ctx context.Context, userID string) ([]*domain.AccommodationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []*domain.AccommodationBooking
	for _, id := range r.byUser[userID] {
		out := *r.bookings[id]
		bookings = append(bookings, &out)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// SetBookingGatewayOrder records the gateway order id for a booking
func (r *MemoryAccommodationRepository) SetBookingGatewayOrder(ctx context.Context, id, gatewayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, exists := r.bookings[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	booking.GatewayOrderID = gatewayOrderID
	return nil
}

// MarkBookingPaid transitions a pending booking to PAID and CONFIRMED
func (r *MemoryAccommodationRepository) MarkBookingPaid(ctx context.Context, id, gatewayPaymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, exists := r.bookings[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	return booking.MarkPaid(gatewayPaymentID)
}

// MarkBookingFailed transitions a pending booking to FAILED
func (r *MemoryAccommodationRepository) MarkBookingFailed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, exists := r.bookings[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	return booking.MarkFailed()
}
