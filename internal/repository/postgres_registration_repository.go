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

const (
	// counterRegistrations is the counters-table row backing the
	// AOA<year>-NNNN sequence
	counterRegistrations = "registration_number"

	// courseCapacityLockID serializes capacity-checked inserts via
	// pg_advisory_xact_lock
	courseCapacityLockID = 920001
)

// nextCounterValue atomically increments and returns a named counter
const nextCounterValue = `
	INSERT INTO counters (name, value) VALUES ($1, 1)
	ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
	RETURNING value`

// PostgresRegistrationRepository implements RegistrationRepository using PostgreSQL
type PostgresRegistrationRepository struct {
	db   *database.PostgresDB
	year int
}

// NewPostgresRegistrationRepository creates a new PostgreSQL registration
// repository. year feeds the registration number prefix.
func NewPostgresRegistrationRepository(db *database.PostgresDB, year int) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{db: db, year: year}
}

// Create inserts a registration and assigns its sequence number atomically
func (r *PostgresRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.insertInTx(ctx, tx, reg); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// CreateWithCapacity inserts a registration only while fewer than capacity
// registrations of the same package type exist. An advisory transaction
// lock serializes the count-then-insert window.
func (r *PostgresRegistrationRepository) CreateWithCapacity(ctx context.Context, reg *domain.Registration, capacity int) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, courseCapacityLockID); err != nil {
		return fmt.Errorf("failed to acquire capacity lock: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE registration_type = $1`,
		string(reg.PackageType),
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count registrations: %w", err)
	}
	if count >= capacity {
		return domain.ErrCourseCapacityFull
	}

	if err := r.insertInTx(ctx, tx, reg); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

func (r *PostgresRegistrationRepository) insertInTx(ctx context.Context, tx pgx.Tx, reg *domain.Registration) error {
	var seq int64
	if err := tx.QueryRow(ctx, nextCounterValue, counterRegistrations).Scan(&seq); err != nil {
		return fmt.Errorf("failed to advance registration counter: %w", err)
	}
	reg.RegistrationNumber = domain.FormatRegistrationNumber(r.year, seq)

	query := `
		INSERT INTO registrations (
			id, user_id, registration_number, registration_type, selected_workshop,
			accompanying_persons, booking_phase, base_price, workshop_price,
			combo_discount, accompanying_total, total_without_gst, gst, total_amount,
			payment_status, gateway_order_id, gateway_payment_id,
			lifetime_membership_id, college_letter, college_letter_type,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22
		)`

	_, err := tx.Exec(ctx, query,
		reg.ID,
		reg.UserID,
		reg.RegistrationNumber,
		string(reg.PackageType),
		reg.SelectedWorkshop,
		reg.AccompanyingPersons,
		string(reg.BookingPhase),
		reg.BasePrice,
		reg.WorkshopPrice,
		reg.ComboDiscount,
		reg.AccompanyingTotal,
		reg.TotalWithoutGST,
		reg.GST,
		reg.TotalAmount,
		string(reg.PaymentStatus),
		reg.GatewayOrderID,
		reg.GatewayPaymentID,
		reg.LifetimeMembershipID,
		reg.CollegeLetter,
		reg.CollegeLetterType,
		reg.CreatedAt,
		reg.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// GetByID retrieves a registration by id
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := registrationSelectColumns + ` WHERE id = $1`
	return r.scanRegistration(r.db.Pool().QueryRow(ctx, query, id))
}

// GetByUserID retrieves the registration belonging to a user
func (r *PostgresRegistrationRepository) GetByUserID(ctx context.Context, userID string) (*domain.Registration, error) {
	query := registrationSelectColumns + ` WHERE user_id = $1`
	return r.scanRegistration(r.db.Pool().QueryRow(ctx, query, userID))
}

// GetByRegistrationNumber retrieves a registration by its number
func (r *PostgresRegistrationRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Registration, error) {
	query := registrationSelectColumns + ` WHERE registration_number = $1`
	return r.scanRegistration(r.db.Pool().QueryRow(ctx, query, number))
}

// CountByPackageType counts registrations of a package type
func (r *PostgresRegistrationRepository) CountByPackageType(ctx context.Context, pkg domain.PackageType) (int, error) {
	var count int
	err := r.db.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE registration_type = $1`,
		string(pkg),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

// SetGatewayOrder records the gateway order id for a registration
func (r *PostgresRegistrationRepository) SetGatewayOrder(ctx context.Context, id, gatewayOrderID string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE registrations SET gateway_order_id = $2, updated_at = now() WHERE id = $1`,
		id, gatewayOrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to set gateway order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// MarkPaid transitions a pending registration to PAID. The update is
// conditional on the current status; an already paid registration is a
// no-op so verification can be retried.
func (r *PostgresRegistrationRepository) MarkPaid(ctx context.Context, id, gatewayPaymentID string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE registrations
		 SET payment_status = 'PAID', gateway_payment_id = $2, updated_at = now()
		 WHERE id = $1 AND payment_status = 'PENDING'`,
		id, gatewayPaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark registration paid: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, id, domain.PaymentStatePaid)
	}
	return nil
}

// MarkFailed transitions a pending registration to FAILED
func (r *PostgresRegistrationRepository) MarkFailed(ctx context.Context, id string) error {
	result, err := r.db.Pool().Exec(ctx,
		`UPDATE registrations
		 SET payment_status = 'FAILED', updated_at = now()
		 WHERE id = $1 AND payment_status = 'PENDING'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark registration failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, id, domain.PaymentStateFailed)
	}
	return nil
}

// resolveMissedUpdate classifies a conditional update that touched no
// rows: missing row, idempotent re-apply, or invalid transition.
func (r *PostgresRegistrationRepository) resolveMissedUpdate(ctx context.Context, id string, wanted domain.PaymentState) error {
	reg, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reg.PaymentStatus == wanted {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidPaymentStatus, reg.PaymentStatus, wanted)
}

// List retrieves registrations ordered by creation time
func (r *PostgresRegistrationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	query := registrationSelectColumns + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := r.scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}
	return regs, nil
}

const registrationSelectColumns = `
	SELECT id, user_id, registration_number, registration_type, selected_workshop,
	       accompanying_persons, booking_phase, base_price, workshop_price,
	       combo_discount, accompanying_total, total_without_gst, gst, total_amount,
	       payment_status, gateway_order_id, gateway_payment_id,
	       lifetime_membership_id, college_letter, college_letter_type,
	       created_at, updated_at
	FROM registrations`

func (r *PostgresRegistrationRepository) scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	var pkg, phase, status string

	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.RegistrationNumber,
		&pkg,
		&reg.SelectedWorkshop,
		&reg.AccompanyingPersons,
		&phase,
		&reg.BasePrice,
		&reg.WorkshopPrice,
		&reg.ComboDiscount,
		&reg.AccompanyingTotal,
		&reg.TotalWithoutGST,
		&reg.GST,
		&reg.TotalAmount,
		&status,
		&reg.GatewayOrderID,
		&reg.GatewayPaymentID,
		&reg.LifetimeMembershipID,
		&reg.CollegeLetter,
		&reg.CollegeLetterType,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}

	reg.PackageType = domain.PackageType(pkg)
	reg.BookingPhase = domain.BookingPhase(phase)
	reg.PaymentStatus = domain.PaymentState(status)
	return &reg, nil
}
