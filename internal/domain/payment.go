package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment ledger entry
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// PaymentTarget discriminates which domain record a payment funds
type PaymentTarget string

const (
	PaymentTargetRegistration  PaymentTarget = "REGISTRATION"
	PaymentTargetAccommodation PaymentTarget = "ACCOMMODATION"
)

// Payment is the ledger entry correlating a gateway order to a local
// target record. The gateway only knows its own order id; this row is
// the single source of truth for routing callbacks back to the domain.
type Payment struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	Target           PaymentTarget `json:"payment_type"`
	RegistrationID   string        `json:"registration_id,omitempty"`
	BookingID        string        `json:"booking_id,omitempty"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Status           PaymentStatus `json:"status"`
	GatewayOrderID   string        `json:"gateway_order_id"`
	GatewayPaymentID string        `json:"gateway_payment_id,omitempty"`
	GatewaySignature string        `json:"-"`
	FailureReason    string        `json:"failure_reason,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewPayment creates a pending ledger entry bound to a gateway order
func NewPayment(userID string, target PaymentTarget, targetID string, amount int64, currency, gatewayOrderID string) (*Payment, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if targetID == "" {
		return nil, fmt.Errorf("target id is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if gatewayOrderID == "" {
		return nil, fmt.Errorf("gateway order id is required")
	}
	if currency == "" {
		currency = "INR"
	}

	now := time.Now().UTC()
	p := &Payment{
		ID:             uuid.New().String(),
		UserID:         userID,
		Target:         target,
		Amount:         amount,
		Currency:       currency,
		Status:         PaymentStatusPending,
		GatewayOrderID: gatewayOrderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	switch target {
	case PaymentTargetRegistration:
		p.RegistrationID = targetID
	case PaymentTargetAccommodation:
		p.BookingID = targetID
	default:
		return nil, fmt.Errorf("unknown payment target: %s", target)
	}
	return p, nil
}

// TargetID returns the id of the record this payment funds
func (p *Payment) TargetID() string {
	if p.Target == PaymentTargetAccommodation {
		return p.BookingID
	}
	return p.RegistrationID
}

// Succeed marks the payment as verified successful. Only a pending
// payment may succeed; terminal states do not transition further.
func (p *Payment) Succeed(gatewayPaymentID, signature string) error {
	if p.Status != PaymentStatusPending {
		return fmt.Errorf("%w: %s -> SUCCESS", ErrInvalidPaymentStatus, p.Status)
	}
	p.Status = PaymentStatusSuccess
	p.GatewayPaymentID = gatewayPaymentID
	p.GatewaySignature = signature
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail marks the payment as failed with a reason. Failing an already
// failed payment is a no-op; a successful payment never fails.
func (p *Payment) Fail(reason string) error {
	if p.Status == PaymentStatusFailed {
		return nil
	}
	if p.Status != PaymentStatusPending {
		return fmt.Errorf("%w: %s -> FAILED", ErrInvalidPaymentStatus, p.Status)
	}
	p.Status = PaymentStatusFailed
	if reason == "" {
		reason = "payment failed"
	}
	p.FailureReason = reason
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// IsFinal returns true if the payment is in a terminal state
func (p *Payment) IsFinal() bool {
	return p.Status == PaymentStatusSuccess || p.Status == PaymentStatusFailed
}

// IsSuccessful returns true if the payment was verified successful
func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentStatusSuccess
}
