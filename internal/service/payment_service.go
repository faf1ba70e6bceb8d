package service

import (
	"context"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
)

// PaymentServiceConfig holds configuration for PaymentService
type PaymentServiceConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
}

// PaymentService defines the interface for payment operations.
//
// Order creation is idempotent per target: while a pending ledger entry
// exists for a registration or booking, the same order is handed back
// instead of creating a new one at the gateway. Verification and failure
// reporting are also idempotent so gateway callbacks can be retried.
type PaymentService interface {
	// CreateRegistrationOrder creates (or returns the open) gateway
	// order for the caller's registration
	CreateRegistrationOrder(ctx context.Context, userID string) (*dto.OrderResponse, error)

	// CreateAccommodationOrder creates (or returns the open) gateway
	// order for one of the caller's bookings
	CreateAccommodationOrder(ctx context.Context, userID, bookingID string) (*dto.OrderResponse, error)

	// VerifyPayment checks the gateway signature for a completed
	// checkout and, on success, settles the ledger entry and marks the
	// target record paid. A mismatched signature leaves the payment
	// pending and returns ErrSignatureMismatch.
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*domain.Payment, error)

	// MarkFailed records a client-reported checkout failure and
	// transitions the target record to FAILED. A successful payment is
	// never reverted.
	MarkFailed(ctx context.Context, userID string, req *dto.PaymentFailedRequest) (*domain.Payment, error)

	// Reconcile re-applies a final ledger state to its target record.
	// Used when a verify callback settled the ledger but the target
	// update was missed.
	Reconcile(ctx context.Context, gatewayOrderID string) (*domain.Payment, error)

	// GetUserPayments retrieves the caller's payment history
	GetUserPayments(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error)
}
