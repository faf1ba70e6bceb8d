package repository

import (
	"context"

	"github.com/aoacon/conference-backend/internal/domain"
)

// PaymentRepository defines the interface for payment ledger access
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByGatewayOrderID retrieves a payment by its gateway order id
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error)

	// GetPendingByTarget retrieves the open pending payment for a
	// target record, if one exists
	GetPendingByTarget(ctx context.Context, target domain.PaymentTarget, targetID string) (*domain.Payment, error)

	// GetByUserID retrieves all payments for a user
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error)

	// Update updates an existing payment
	Update(ctx context.Context, payment *domain.Payment) error
}
