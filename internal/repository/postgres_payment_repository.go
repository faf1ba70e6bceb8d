package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aoacon/conference-backend/internal/database"
	"github.com/aoacon/conference-backend/internal/domain"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *database.PostgresDB
}

// NewPostgresPaymentRepository creates a new PostgreSQL payment repository
func NewPostgresPaymentRepository(db *database.PostgresDB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// Create creates a new payment record
func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, user_id, payment_type, registration_id, booking_id, amount,
			currency, status, gateway_order_id, gateway_payment_id,
			gateway_signature, failure_reason, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err := r.db.Pool().Exec(ctx, query,
		payment.ID,
		payment.UserID,
		string(payment.Target),
		nullable(payment.RegistrationID),
		nullable(payment.BookingID),
		payment.Amount,
		payment.Currency,
		string(payment.Status),
		payment.GatewayOrderID,
		payment.GatewayPaymentID,
		payment.GatewaySignature,
		payment.FailureReason,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return domain.ErrPaymentAlreadyExists
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := paymentSelectColumns + ` WHERE id = $1`
	return r.scanPayment(r.db.Pool().QueryRow(ctx, query, id))
}

// GetByGatewayOrderID retrieves a payment by its gateway order id
func (r *PostgresPaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	query := paymentSelectColumns + ` WHERE gateway_order_id = $1`
	return r.scanPayment(r.db.Pool().QueryRow(ctx, query, gatewayOrderID))
}

// GetPendingByTarget retrieves the open pending payment for a target record
func (r *PostgresPaymentRepository) GetPendingByTarget(ctx context.Context, target domain.PaymentTarget, targetID string) (*domain.Payment, error) {
	column := "registration_id"
	if target == domain.PaymentTargetAccommodation {
		column = "booking_id"
	}
	query := paymentSelectColumns + fmt.Sprintf(`
		WHERE payment_type = $1 AND %s = $2 AND status = 'PENDING'
		ORDER BY created_at DESC
		LIMIT 1`, column)

	return r.scanPayment(r.db.Pool().QueryRow(ctx, query, string(target), targetID))
}

// GetByUserID retrieves all payments for a user
func (r *PostgresPaymentRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error) {
	query := paymentSelectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Pool().Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// Update updates an existing payment
func (r *PostgresPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = $2,
		    gateway_payment_id = $3,
		    gateway_signature = $4,
		    failure_reason = $5,
		    updated_at = $6
		WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query,
		payment.ID,
		string(payment.Status),
		payment.GatewayPaymentID,
		payment.GatewaySignature,
		payment.FailureReason,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

const paymentSelectColumns = `
	SELECT id, user_id, payment_type, registration_id, booking_id, amount,
	       currency, status, gateway_order_id, gateway_payment_id,
	       gateway_signature, failure_reason, created_at, updated_at
	FROM payments`

func (r *PostgresPaymentRepository) scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	var target, status string
	var registrationID, bookingID *string

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&target,
		&registrationID,
		&bookingID,
		&payment.Amount,
		&payment.Currency,
		&status,
		&payment.GatewayOrderID,
		&payment.GatewayPaymentID,
		&payment.GatewaySignature,
		&payment.FailureReason,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	payment.Target = domain.PaymentTarget(target)
	payment.Status = domain.PaymentStatus(status)
	if registrationID != nil {
		payment.RegistrationID = *registrationID
	}
	if bookingID != nil {
		payment.BookingID = *bookingID
	}
	return &payment, nil
}

// nullable maps an empty string to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
