package repository

import (
	"context"

	"github.com/aoacon/conference-backend/internal/domain"
)

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// Create inserts a registration and assigns its sequence number
	// atomically. Returns ErrAlreadyRegistered if the user already has
	// a registration.
	Create(ctx context.Context, reg *domain.Registration) error

	// CreateWithCapacity inserts a registration only while fewer than
	// capacity registrations of the same package type exist. The count
	// and insert are serialized so concurrent submissions cannot
	// oversell. Returns ErrCourseCapacityFull when the cap is reached.
	CreateWithCapacity(ctx context.Context, reg *domain.Registration, capacity int) error

	// GetByID retrieves a registration by id
	GetByID(ctx context.Context, id string) (*domain.Registration, error)

	// GetByUserID retrieves the registration belonging to a user
	GetByUserID(ctx context.Context, userID string) (*domain.Registration, error)

	// GetByRegistrationNumber retrieves a registration by its
	// human-readable number
	GetByRegistrationNumber(ctx context.Context, number string) (*domain.Registration, error)

	// CountByPackageType counts registrations of a package type
	CountByPackageType(ctx context.Context, pkg domain.PackageType) (int, error)

	// SetGatewayOrder records the gateway order id for a registration
	SetGatewayOrder(ctx context.Context, id, gatewayOrderID string) error

	// MarkPaid transitions a pending registration to PAID. Applying it
	// to an already paid registration is a no-op.
	MarkPaid(ctx context.Context, id, gatewayPaymentID string) error

	// MarkFailed transitions a pending registration to FAILED. A paid
	// registration is never reverted.
	MarkFailed(ctx context.Context, id string) error

	// List retrieves registrations ordered by creation time
	List(ctx context.Context, limit, offset int) ([]*domain.Registration, error)
}
