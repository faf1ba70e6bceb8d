package dto

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// CreateAccommodationOrderRequest identifies the booking to pay for
type CreateAccommodationOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// VerifyPaymentRequest carries the gateway callback fields after checkout
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// PaymentFailedRequest records a client-reported checkout failure
type PaymentFailedRequest struct {
	OrderID string `json:"razorpay_order_id" binding:"required"`
	Reason  string `json:"reason,omitempty"`
}

// OrderResponse represents a created gateway order ready for checkout.
// Amount is in minor units (paise) as the checkout widget expects.
type OrderResponse struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
	PaymentID   string `json:"payment_id"`
	Description string `json:"description,omitempty"`
}

// PaymentResponse represents a ledger entry in API responses
type PaymentResponse struct {
	ID               string    `json:"id"`
	Target           string    `json:"payment_type"`
	RegistrationID   string    `json:"registration_id,omitempty"`
	BookingID        string    `json:"booking_id,omitempty"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id,omitempty"`
	FailureReason    string    `json:"failure_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FromPayment converts a domain Payment to PaymentResponse
func FromPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		Target:           string(p.Target),
		RegistrationID:   p.RegistrationID,
		BookingID:        p.BookingID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PaymentListResponse represents a page of payments
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}
