package dto

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// CreateAccommodationRequest represents an admin request to add a property
type CreateAccommodationRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=200"`
	Description   string   `json:"description,omitempty"`
	Location      string   `json:"location" binding:"required"`
	PricePerNight int64    `json:"price_per_night" binding:"required,gt=0"`
	TotalRooms    int      `json:"total_rooms" binding:"required,gt=0"`
	Amenities     []string `json:"amenities,omitempty"`
	CheckInTime   string   `json:"check_in_time,omitempty"`
	CheckOutTime  string   `json:"check_out_time,omitempty"`
	Rating        int      `json:"rating" binding:"min=0,max=5"`
}

// CreateBookingRequest represents a room booking request
type CreateBookingRequest struct {
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required,min=1,max=4"`
	RoomsBooked     int    `json:"rooms_booked" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// AccommodationResponse represents a property in API responses
type AccommodationResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Location       string   `json:"location"`
	PricePerNight  int64    `json:"price_per_night"`
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	Amenities      []string `json:"amenities,omitempty"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   string   `json:"check_out_time"`
	Rating         int      `json:"rating"`
}

// FromAccommodation converts a domain Accommodation to AccommodationResponse
func FromAccommodation(a *domain.Accommodation) *AccommodationResponse {
	return &AccommodationResponse{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		Location:       a.Location,
		PricePerNight:  a.PricePerNight,
		TotalRooms:     a.TotalRooms,
		AvailableRooms: a.AvailableRooms,
		Amenities:      a.Amenities,
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		Rating:         a.Rating,
	}
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID              string    `json:"id"`
	BookingNumber   string    `json:"booking_number"`
	UserID          string    `json:"user_id"`
	AccommodationID string    `json:"accommodation_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	NumberOfNights  int       `json:"number_of_nights"`
	NumberOfGuests  int       `json:"number_of_guests"`
	RoomsBooked     int       `json:"rooms_booked"`
	TotalAmount     int64     `json:"total_amount"`
	PaymentStatus   string    `json:"payment_status"`
	BookingStatus   string    `json:"booking_status"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	GatewayOrderID  string    `json:"gateway_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromBooking converts a domain AccommodationBooking to BookingResponse
func FromBooking(b *domain.AccommodationBooking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		UserID:          b.UserID,
		AccommodationID: b.AccommodationID,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		NumberOfNights:  b.NumberOfNights,
		NumberOfGuests:  b.NumberOfGuests,
		RoomsBooked:     b.RoomsBooked,
		TotalAmount:     b.TotalAmount,
		PaymentStatus:   string(b.PaymentStatus),
		BookingStatus:   string(b.BookingStatus),
		SpecialRequests: b.SpecialRequests,
		GatewayOrderID:  b.GatewayOrderID,
		CreatedAt:       b.CreatedAt,
	}
}
