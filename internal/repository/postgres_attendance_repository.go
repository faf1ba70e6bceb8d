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

// PostgresAttendanceRepository implements AttendanceRepository using PostgreSQL
type PostgresAttendanceRepository struct {
	db *database.PostgresDB
}

// NewPostgresAttendanceRepository creates a new PostgreSQL attendance repository
func NewPostgresAttendanceRepository(db *database.PostgresDB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

// Create creates an attendance record for a registration
func (r *PostgresAttendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	query := `
		INSERT INTO attendances (
			id, registration_id, scan_token, total_scans, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Pool().Exec(ctx, query,
		att.ID,
		att.RegistrationID,
		att.ScanToken,
		att.TotalScans,
		att.IsActive,
		att.CreatedAt,
		att.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			// one attendance record per registration
			return nil
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// GetByRegistrationID retrieves the attendance record for a registration
func (r *PostgresAttendanceRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Attendance, error) {
	query := attendanceSelectColumns + ` WHERE registration_id = $1`
	return r.scanAttendance(r.db.Pool().QueryRow(ctx, query, registrationID))
}

// GetByScanToken retrieves the attendance record for a scan token
func (r *PostgresAttendanceRepository) GetByScanToken(ctx context.Context, token string) (*domain.Attendance, error) {
	query := attendanceSelectColumns + ` WHERE scan_token = $1`
	return r.scanAttendance(r.db.Pool().QueryRow(ctx, query, token))
}

// AddScan appends a scan entry and increments the total scan count in
// one transaction
func (r *PostgresAttendanceRepository) AddScan(ctx context.Context, entry *domain.ScanEntry) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE attendances
		 SET total_scans = total_scans + $2, updated_at = now()
		 WHERE id = $1 AND is_active`,
		entry.AttendanceID, entry.Count,
	)
	if err != nil {
		return fmt.Errorf("failed to increment scan count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAttendanceNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO attendance_scans (
			id, attendance_id, scanned_at, scanned_by, location, notes, count
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.AttendanceID,
		entry.ScannedAt,
		entry.ScannedBy,
		entry.Location,
		entry.Notes,
		entry.Count,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit scan: %w", err)
	}
	return nil
}

// ListScans retrieves the scan history for an attendance record
func (r *PostgresAttendanceRepository) ListScans(ctx context.Context, attendanceID string) ([]*domain.ScanEntry, error) {
	query := `
		SELECT id, attendance_id, scanned_at, scanned_by, location, notes, count
		FROM attendance_scans
		WHERE attendance_id = $1
		ORDER BY scanned_at`

	rows, err := r.db.Pool().Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ScanEntry
	for rows.Next() {
		var entry domain.ScanEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AttendanceID,
			&entry.ScannedAt,
			&entry.ScannedBy,
			&entry.Location,
			&entry.Notes,
			&entry.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return entries, nil
}

// List retrieves attendance records ordered by creation time
func (r *PostgresAttendanceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Attendance, error) {
	query := attendanceSelectColumns + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var atts []*domain.Attendance
	for rows.Next() {
		att, err := r.scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return atts, nil
}

const attendanceSelectColumns = `
	SELECT id, registration_id, scan_token, total_scans, is_active,
	       created_at, updated_at
	FROM attendances`

func (r *PostgresAttendanceRepository) scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var att domain.Attendance

	err := row.Scan(
		&att.ID,
		&att.RegistrationID,
		&att.ScanToken,
		&att.TotalScans,
		&att.IsActive,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to scan attendance: %w", err)
	}
	return &att, nil
}
