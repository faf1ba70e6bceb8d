package repository

import (
	"context"

	"github.com/aoacon/conference-backend/internal/domain"
)

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Create creates an attendance record for a registration
	Create(ctx context.Context, att *domain.Attendance) error

	// GetByRegistrationID retrieves the attendance record for a registration
	GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Attendance, error)

	// GetByScanToken retrieves the attendance record for a scan token
	GetByScanToken(ctx context.Context, token string) (*domain.Attendance, error)

	// AddScan appends a scan entry and increments the total scan count
	// in one transaction
	AddScan(ctx context.Context, entry *domain.ScanEntry) error

	// ListScans retrieves the scan history for an attendance record
	ListScans(ctx context.Context, attendanceID string) ([]*domain.ScanEntry, error)

	// List retrieves attendance records ordered by creation time
	List(ctx context.Context, limit, offset int) ([]*domain.Attendance, error)
}
