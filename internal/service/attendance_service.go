package service

import (
	"context"
	"errors"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/repository"
)

// AttendanceService defines the interface for venue attendance operations
type AttendanceService interface {
	// GetBadge returns the caller's venue badge, creating the
	// attendance record on first access. The registration must be paid.
	GetBadge(ctx context.Context, userID string) (*dto.BadgeResponse, error)

	// CheckScan looks up the badge behind a scan token without
	// recording anything
	CheckScan(ctx context.Context, token string) (*dto.BadgeResponse, error)

	// MarkScan records a gate scan against a badge and returns the
	// updated attendance record
	MarkScan(ctx context.Context, scannedBy string, req *dto.MarkScanRequest) (*domain.Attendance, error)

	// ListScans retrieves the scan history for an attendance record
	ListScans(ctx context.Context, attendanceID string) ([]*domain.ScanEntry, error)

	// List retrieves attendance records for the admin dashboard
	List(ctx context.Context, limit, offset int) ([]*domain.Attendance, error)
}

// attendanceService implements AttendanceService
type attendanceService struct {
	attRepo  repository.AttendanceRepository
	regRepo  repository.RegistrationRepository
	userRepo repository.UserRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attRepo repository.AttendanceRepository,
	regRepo repository.RegistrationRepository,
	userRepo repository.UserRepository,
) AttendanceService {
	return &attendanceService{
		attRepo:  attRepo,
		regRepo:  regRepo,
		userRepo: userRepo,
	}
}

// GetBadge returns the caller's venue badge, creating the attendance
// record on first access
func (s *attendanceService) GetBadge(ctx context.Context, userID string) (*dto.BadgeResponse, error) {
	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !reg.IsPaid() {
		return nil, domain.ErrRegistrationNotPaid
	}

	att, err := s.attRepo.GetByRegistrationID(ctx, reg.ID)
	if errors.Is(err, domain.ErrAttendanceNotFound) {
		att, err = domain.NewAttendance(reg.ID, reg.RegistrationNumber)
		if err != nil {
			return nil, err
		}
		// Concurrent first access may race; the create is idempotent
		// and the re-read settles on one record.
		if err := s.attRepo.Create(ctx, att); err != nil {
			return nil, err
		}
		att, err = s.attRepo.GetByRegistrationID(ctx, reg.ID)
	}
	if err != nil {
		return nil, err
	}

	return s.badge(ctx, att, reg)
}

// CheckScan looks up the badge behind a scan token
func (s *attendanceService) CheckScan(ctx context.Context, token string) (*dto.BadgeResponse, error) {
	att, err := s.attRepo.GetByScanToken(ctx, token)
	if err != nil {
		return nil, err
	}
	reg, err := s.regRepo.GetByID(ctx, att.RegistrationID)
	if err != nil {
		return nil, err
	}
	return s.badge(ctx, att, reg)
}

// MarkScan records a gate scan against a badge
func (s *attendanceService) MarkScan(ctx context.Context, scannedBy string, req *dto.MarkScanRequest) (*domain.Attendance, error) {
	att, err := s.attRepo.GetByScanToken(ctx, req.ScanToken)
	if err != nil {
		return nil, err
	}
	if !att.IsActive {
		return nil, domain.ErrAttendanceNotFound
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	entry, err := domain.NewScanEntry(att.ID, scannedBy, req.Location, req.Notes, count)
	if err != nil {
		return nil, err
	}
	if err := s.attRepo.AddScan(ctx, entry); err != nil {
		return nil, err
	}

	return s.attRepo.GetByScanToken(ctx, req.ScanToken)
}

// ListScans retrieves the scan history for an attendance record
func (s *attendanceService) ListScans(ctx context.Context, attendanceID string) ([]*domain.ScanEntry, error) {
	return s.attRepo.ListScans(ctx, attendanceID)
}

// List retrieves attendance records for the admin dashboard
func (s *attendanceService) List(ctx context.Context, limit, offset int) ([]*domain.Attendance, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.attRepo.List(ctx, limit, offset)
}

func (s *attendanceService) badge(ctx context.Context, att *domain.Attendance, reg *domain.Registration) (*dto.BadgeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.BadgeResponse{
		AttendanceID:       att.ID,
		RegistrationNumber: reg.RegistrationNumber,
		ScanToken:          att.ScanToken,
		Name:               user.Name,
		Role:               string(user.Role),
		PackageType:        string(reg.PackageType),
		SelectedWorkshop:   reg.SelectedWorkshop,
		TotalScans:         att.TotalScans,
	}, nil
}
