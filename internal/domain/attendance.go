package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attendance tracks venue entry for a paid registration. The scan token
// is the registration number; scan history is append-only.
type Attendance struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	ScanToken      string    `json:"scan_token"`
	TotalScans     int       `json:"total_scans"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ScanEntry records one gate scan. Entries are never modified or removed.
type ScanEntry struct {
	ID           string    `json:"id"`
	AttendanceID string    `json:"attendance_id"`
	ScannedAt    time.Time `json:"scanned_at"`
	ScannedBy    string    `json:"scanned_by"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes,omitempty"`
	Count        int       `json:"count"`
}

// NewAttendance creates an attendance record for a paid registration
func NewAttendance(registrationID, scanToken string) (*Attendance, error) {
	if registrationID == "" {
		return nil, ErrRegistrationNotFound
	}
	now := time.Now().UTC()
	return &Attendance{
		ID:             uuid.New().String(),
		RegistrationID: registrationID,
		ScanToken:      scanToken,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NewScanEntry creates a single scan history entry
func NewScanEntry(attendanceID, scannedBy, location, notes string, count int) (*ScanEntry, error) {
	if count < 1 {
		return nil, ErrInvalidScanCount
	}
	if location == "" {
		location = "Main Gate"
	}
	return &ScanEntry{
		ID:           uuid.New().String(),
		AttendanceID: attendanceID,
		ScannedAt:    time.Now().UTC(),
		ScannedBy:    scannedBy,
		Location:     location,
		Notes:        notes,
		Count:        count,
	}, nil
}
