package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
)

func newTestAccommodation(rooms int) *domain.Accommodation {
	now := time.Now().UTC()
	return &domain.Accommodation{
		ID:             uuid.New().String(),
		Name:           "Hotel Sunflower",
		Location:       "Near venue",
		PricePerNight:  4000,
		TotalRooms:     rooms,
		AvailableRooms: rooms,
		CheckInTime:    "12:00",
		CheckOutTime:   "11:00",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func newTestBooking(t *testing.T, userID string, acc *domain.Accommodation, rooms int) *domain.AccommodationBooking {
	t.Helper()
	checkIn := time.Date(2026, 11, 19, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 11, 22, 0, 0, 0, 0, time.UTC)
	booking, err := domain.NewAccommodationBooking(userID, acc, checkIn, checkOut, 2, rooms, "")
	require.NoError(t, err)
	return booking
}

func TestMemoryAccommodationRepository_CreateBooking_DecrementsRooms(t *testing.T) {
	repo := NewMemoryAccommodationRepository()
	ctx := context.Background()

	acc := newTestAccommodation(5)
	require.NoError(t, repo.Create(ctx, acc))

	booking := newTestBooking(t, "user-1", acc, 2)
	require.NoError(t, repo.CreateBooking(ctx, booking))

	assert.Equal(t, "ACC-0001", booking.BookingNumber)
	assert.Equal(t, int64(4000*3*2), booking.TotalAmount)

	stored, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.AvailableRooms)
}

func TestMemoryAccommodationRepository_CreateBooking_NotEnoughRooms(t *testing.T) {
	repo := NewMemoryAccommodationRepository()
	ctx := context.Background()

	acc := newTestAccommodation(1)
	require.NoError(t, repo.Create(ctx, acc))

	err := repo.CreateBooking(ctx, newTestBooking(t, "user-1", acc, 2))
	assert.ErrorIs(t, err, domain.ErrNotEnoughRooms)

	stored, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AvailableRooms)
}

func TestMemoryAccommodationRepository_CreateBooking_ConcurrentNoOversell(t *testing.T) {
	repo := NewMemoryAccommodationRepository()
	ctx := context.Background()

	acc := newTestAccommodation(10)
	require.NoError(t, repo.Create(ctx, acc))

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			booking := newTestBooking(t, fmt.Sprintf("guest-%03d", n), acc, 1)
			errs <- repo.CreateBooking(ctx, booking)
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrNotEnoughRooms)
		}
	}
	assert.Equal(t, 10, succeeded)

	stored, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableRooms)
}

func TestMemoryAccommodationRepository_MarkBookingPaid(t *testing.T) {
	repo := NewMemoryAccommodationRepository()
	ctx := context.Background()

	acc := newTestAccommodation(5)
	require.NoError(t, repo.Create(ctx, acc))

	booking := newTestBooking(t, "user-1", acc, 1)
	require.NoError(t, repo.CreateBooking(ctx, booking))

	require.NoError(t, repo.MarkBookingPaid(ctx, booking.ID, "pay_456"))
	require.NoError(t, repo.MarkBookingPaid(ctx, booking.ID, "pay_456"))

	stored, err := repo.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
	assert.Equal(t, domain.BookingStatusConfirmed, stored.BookingStatus)
}
