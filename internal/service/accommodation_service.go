package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/repository"
)

const bookingDateLayout = "2006-01-02"

// AccommodationService defines the interface for accommodation operations
type AccommodationService interface {
	// ListActive retrieves bookable properties
	ListActive(ctx context.Context) ([]*domain.Accommodation, error)

	// GetByID retrieves a property by id
	GetByID(ctx context.Context, id string) (*domain.Accommodation, error)

	// Create adds a property to the inventory
	Create(ctx context.Context, req *dto.CreateAccommodationRequest) (*domain.Accommodation, error)

	// CreateBooking reserves rooms for a user. The room decrement and
	// booking insert happen atomically; oversells are rejected with
	// ErrNotEnoughRooms.
	CreateBooking(ctx context.Context, userID, accommodationID string, req *dto.CreateBookingRequest) (*domain.AccommodationBooking, error)

	// GetBooking retrieves a booking by id
	GetBooking(ctx context.Context, id string) (*domain.AccommodationBooking, error)

	// GetMyBookings retrieves the caller's bookings
	GetMyBookings(ctx context.Context, userID string) ([]*domain.AccommodationBooking, error)
}

// accommodationService implements AccommodationService
type accommodationService struct {
	accRepo repository.AccommodationRepository
}

// NewAccommodationService creates a new AccommodationService
func NewAccommodationService(accRepo repository.AccommodationRepository) AccommodationService {
	return &accommodationService{accRepo: accRepo}
}

// ListActive retrieves bookable properties
func (s *accommodationService) ListActive(ctx context.Context) ([]*domain.Accommodation, error) {
	return s.accRepo.ListActive(ctx)
}

// GetByID retrieves a property by id
func (s *accommodationService) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	return s.accRepo.GetByID(ctx, id)
}

// Create adds a property to the inventory
func (s *accommodationService) Create(ctx context.Context, req *dto.CreateAccommodationRequest) (*domain.Accommodation, error) {
	now := time.Now().UTC()
	acc := &domain.Accommodation{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		PricePerNight:  req.PricePerNight,
		TotalRooms:     req.TotalRooms,
		AvailableRooms: req.TotalRooms,
		Amenities:      req.Amenities,
		CheckInTime:    req.CheckInTime,
		CheckOutTime:   req.CheckOutTime,
		Rating:         req.Rating,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if acc.CheckInTime == "" {
		acc.CheckInTime = "12:00"
	}
	if acc.CheckOutTime == "" {
		acc.CheckOutTime = "11:00"
	}

	if err := s.accRepo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// CreateBooking reserves rooms for a user
func (s *accommodationService) CreateBooking(ctx context.Context, userID, accommodationID string, req *dto.CreateBookingRequest) (*domain.AccommodationBooking, error) {
	checkIn, err := time.Parse(bookingDateLayout, req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in_date", domain.ErrInvalidDateRange)
	}
	checkOut, err := time.Parse(bookingDateLayout, req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out_date", domain.ErrInvalidDateRange)
	}

	acc, err := s.accRepo.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if !acc.IsActive {
		return nil, domain.ErrAccommodationNotFound
	}

	booking, err := domain.NewAccommodationBooking(userID, acc, checkIn, checkOut, req.NumberOfGuests, req.RoomsBooked, req.SpecialRequests)
	if err != nil {
		return nil, err
	}

	if err := s.accRepo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking retrieves a booking by id
func (s *accommodationService) GetBooking(ctx context.Context, id string) (*domain.AccommodationBooking, error) {
	return s.accRepo.GetBookingByID(ctx, id)
}

// GetMyBookings retrieves the caller's bookings
func (s *accommodationService) GetMyBookings(ctx context.Context, userID string) ([]*domain.AccommodationBooking, error) {
	return s.accRepo.GetBookingsByUserID(ctx, userID)
}
