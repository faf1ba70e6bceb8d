package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the confirmation lifecycle of an accommodation booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Accommodation is a bookable property near the venue
type Accommodation struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	PricePerNight  int64     `json:"price_per_night"`
	TotalRooms     int       `json:"total_rooms"`
	AvailableRooms int       `json:"available_rooms"`
	Amenities      []string  `json:"amenities,omitempty"`
	CheckInTime    string    `json:"check_in_time"`
	CheckOutTime   string    `json:"check_out_time"`
	Rating         int       `json:"rating"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccommodationBooking reserves rooms for a date range. Its payment
// lifecycle is independent of the registration's.
type AccommodationBooking struct {
	ID               string        `json:"id"`
	BookingNumber    string        `json:"booking_number"`
	UserID           string        `json:"user_id"`
	AccommodationID  string        `json:"accommodation_id"`
	CheckInDate      time.Time     `json:"check_in_date"`
	CheckOutDate     time.Time     `json:"check_out_date"`
	NumberOfNights   int           `json:"number_of_nights"`
	NumberOfGuests   int           `json:"number_of_guests"`
	RoomsBooked      int           `json:"rooms_booked"`
	TotalAmount      int64         `json:"total_amount"`
	PaymentStatus    PaymentState  `json:"payment_status"`
	BookingStatus    BookingStatus `json:"booking_status"`
	SpecialRequests  string        `json:"special_requests,omitempty"`
	GatewayOrderID   string        `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string        `json:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NightsBetween computes the billable night count for a stay,
// ceil((checkOut-checkIn)/1 day). A non-positive result is invalid.
func NightsBetween(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

// NewAccommodationBooking validates the stay and computes nights and total
func NewAccommodationBooking(userID string, acc *Accommodation, checkIn, checkOut time.Time, guests, rooms int, specialRequests string) (*AccommodationBooking, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if acc == nil {
		return nil, ErrAccommodationNotFound
	}
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}
	if guests < 1 || guests > 4 {
		return nil, ErrInvalidGuestCount
	}
	if rooms < 1 {
		return nil, ErrInvalidRoomCount
	}

	now := time.Now().UTC()
	return &AccommodationBooking{
		ID:              uuid.New().String(),
		UserID:          userID,
		AccommodationID: acc.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfNights:  nights,
		NumberOfGuests:  guests,
		RoomsBooked:     rooms,
		TotalAmount:     acc.PricePerNight * int64(nights) * int64(rooms),
		PaymentStatus:   PaymentStatePending,
		BookingStatus:   BookingStatusPending,
		SpecialRequests: specialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// MarkPaid transitions the booking to PAID and CONFIRMED. Re-applying
// on an already paid booking is a no-op.
func (b *AccommodationBooking) MarkPaid(gatewayPaymentID string) error {
	if b.PaymentStatus == PaymentStatePaid {
		return nil
	}
	if b.PaymentStatus != PaymentStatePending {
		return fmt.Errorf("%w: %s -> PAID", ErrInvalidPaymentStatus, b.PaymentStatus)
	}
	b.PaymentStatus = PaymentStatePaid
	b.BookingStatus = BookingStatusConfirmed
	b.GatewayPaymentID = gatewayPaymentID
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkFailed transitions the booking to FAILED. PAID never reverts.
func (b *AccommodationBooking) MarkFailed() error {
	if b.PaymentStatus == PaymentStateFailed {
		return nil
	}
	if b.PaymentStatus != PaymentStatePending {
		return fmt.Errorf("%w: %s -> FAILED", ErrInvalidPaymentStatus, b.PaymentStatus)
	}
	b.PaymentStatus = PaymentStateFailed
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// FormatBookingNumber renders the human-readable booking number, e.g. ACC-0007
func FormatBookingNumber(seq int64) string {
	return fmt.Sprintf("ACC-%04d", seq)
}
