package dto

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// CreateRegistrationRequest represents a registration submission. The
// lifetime membership id is issued server-side for COMBO and cannot be
// supplied by the client.
type CreateRegistrationRequest struct {
	PackageType         string `json:"registration_type" binding:"required"`
	SelectedWorkshop    string `json:"selected_workshop,omitempty"`
	AccompanyingPersons int    `json:"accompanying_persons" binding:"min=0,max=10"`
	CollegeLetter       []byte `json:"college_letter,omitempty"`
	CollegeLetterType   string `json:"college_letter_type,omitempty"`
}

// PricingRequest represents a price preview request. When no package
// type is given the full per-package matrix is returned instead.
type PricingRequest struct {
	PackageType         string `form:"registration_type" json:"registration_type"`
	AccompanyingPersons int    `form:"accompanying_persons" json:"accompanying_persons" binding:"min=0,max=10"`
}

// PriceBreakdownResponse represents a computed price breakdown
type PriceBreakdownResponse struct {
	BasePrice         int64  `json:"base_price"`
	WorkshopPrice     int64  `json:"workshop_price"`
	ComboDiscount     int64  `json:"combo_discount"`
	AccompanyingTotal int64  `json:"accompanying_total"`
	TotalWithoutGST   int64  `json:"total_without_gst"`
	GST               int64  `json:"gst"`
	TotalAmount       int64  `json:"total_amount"`
	BookingPhase      string `json:"booking_phase"`
}

// FromPriceBreakdown converts a domain breakdown to a response
func FromPriceBreakdown(p *domain.PriceBreakdown, phase domain.BookingPhase) *PriceBreakdownResponse {
	return &PriceBreakdownResponse{
		BasePrice:         p.BasePrice,
		WorkshopPrice:     p.WorkshopPrice,
		ComboDiscount:     p.ComboDiscount,
		AccompanyingTotal: p.AccompanyingTotal,
		TotalWithoutGST:   p.TotalWithoutGST,
		GST:               p.GST,
		TotalAmount:       p.TotalAmount,
		BookingPhase:      string(phase),
	}
}

// PricingMatrixResponse lists every package quotable for the caller's
// role at the current phase, keyed by package type
type PricingMatrixResponse struct {
	BookingPhase string                             `json:"booking_phase"`
	Pricing      map[string]*PriceBreakdownResponse `json:"pricing"`
}

// FromPriceMatrix converts a per-package quote map to a response
func FromPriceMatrix(quotes map[domain.PackageType]*domain.PriceBreakdown, phase domain.BookingPhase) *PricingMatrixResponse {
	resp := &PricingMatrixResponse{
		BookingPhase: string(phase),
		Pricing:      make(map[string]*PriceBreakdownResponse, len(quotes)),
	}
	for pkg, price := range quotes {
		resp.Pricing[string(pkg)] = FromPriceBreakdown(price, phase)
	}
	return resp
}

// RegistrationResponse represents a registration in API responses
type RegistrationResponse struct {
	ID                   string                  `json:"id"`
	UserID               string                  `json:"user_id"`
	RegistrationNumber   string                  `json:"registration_number"`
	PackageType          string                  `json:"registration_type"`
	SelectedWorkshop     string                  `json:"selected_workshop,omitempty"`
	AccompanyingPersons  int                     `json:"accompanying_persons"`
	BookingPhase         string                  `json:"booking_phase"`
	Pricing              *PriceBreakdownResponse `json:"pricing"`
	PaymentStatus        string                  `json:"payment_status"`
	GatewayOrderID       string                  `json:"gateway_order_id,omitempty"`
	LifetimeMembershipID string                  `json:"lifetime_membership_id,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
}

// FromRegistration converts a domain Registration to RegistrationResponse
func FromRegistration(r *domain.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:                   r.ID,
		UserID:               r.UserID,
		RegistrationNumber:   r.RegistrationNumber,
		PackageType:          string(r.PackageType),
		SelectedWorkshop:     r.SelectedWorkshop,
		AccompanyingPersons:  r.AccompanyingPersons,
		BookingPhase:         string(r.BookingPhase),
		Pricing:              FromPriceBreakdown(&r.PriceBreakdown, r.BookingPhase),
		PaymentStatus:        string(r.PaymentStatus),
		GatewayOrderID:       r.GatewayOrderID,
		LifetimeMembershipID: r.LifetimeMembershipID,
		CreatedAt:            r.CreatedAt,
	}
}

// RegistrationListResponse represents a list of registrations
type RegistrationListResponse struct {
	Registrations []*RegistrationResponse `json:"registrations"`
	Total         int                     `json:"total"`
}
