package dto

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// CheckScanRequest looks up a badge by its scan token
type CheckScanRequest struct {
	ScanToken string `json:"scan_token" binding:"required"`
}

// MarkScanRequest records a gate scan against a badge
type MarkScanRequest struct {
	ScanToken string `json:"scan_token" binding:"required"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// BadgeResponse represents the attendee badge shown at the venue
type BadgeResponse struct {
	AttendanceID       string `json:"attendance_id"`
	RegistrationNumber string `json:"registration_number"`
	ScanToken          string `json:"scan_token"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	PackageType        string `json:"registration_type"`
	SelectedWorkshop   string `json:"selected_workshop,omitempty"`
	TotalScans         int    `json:"total_scans"`
}

// ScanEntryResponse represents one scan history entry
type ScanEntryResponse struct {
	ID        string    `json:"id"`
	ScannedAt time.Time `json:"scanned_at"`
	ScannedBy string    `json:"scanned_by"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes,omitempty"`
	Count     int       `json:"count"`
}

// FromScanEntry converts a domain ScanEntry to ScanEntryResponse
func FromScanEntry(e *domain.ScanEntry) *ScanEntryResponse {
	return &ScanEntryResponse{
		ID:        e.ID,
		ScannedAt: e.ScannedAt,
		ScannedBy: e.ScannedBy,
		Location:  e.Location,
		Notes:     e.Notes,
		Count:     e.Count,
	}
}

// AttendanceResponse represents an attendance record with scan totals
type AttendanceResponse struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	ScanToken      string    `json:"scan_token"`
	TotalScans     int       `json:"total_scans"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromAttendance converts a domain Attendance to AttendanceResponse
func FromAttendance(a *domain.Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:             a.ID,
		RegistrationID: a.RegistrationID,
		ScanToken:      a.ScanToken,
		TotalScans:     a.TotalScans,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}

// AttendanceListResponse represents a list of attendance records
type AttendanceListResponse struct {
	Attendances []*AttendanceResponse `json:"attendances"`
	Total       int                   `json:"total"`
}
