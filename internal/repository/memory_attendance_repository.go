package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aoacon/conference-backend/internal/domain"
)

// MemoryAttendanceRepository implements AttendanceRepository using
// in-memory storage. Useful for testing and development.
type MemoryAttendanceRepository struct {
	attendances    map[string]*domain.Attendance
	byRegistration map[string]string
	byToken        map[string]string
	scans          map[string][]*domain.ScanEntry
	mu             sync.Mutex
}

// NewMemoryAttendanceRepository creates a new in-memory attendance repository
func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{
		attendances:    make(map[string]*domain.Attendance),
		byRegistration: make(map[string]string),
		byToken:        make(map[string]string),
		scans:          make(map[string][]*domain.ScanEntry),
	}
}

// Create creates an attendance record for a registration
func (r *MemoryAttendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// one attendance record per registration
	if _, exists := r.byRegistration[att.RegistrationID]; exists {
		return nil
	}

	stored := *att
	r.attendances[att.ID] = &stored
	r.byRegistration[att.RegistrationID] = att.ID
	r.byToken[att.ScanToken] = att.ID
	return nil
}

// GetByRegistrationID retrieves the attendance record for a registration
func (r *MemoryAttendanceRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byRegistration[registrationID]
	if !exists {
		return nil, domain.ErrAttendanceNotFound
	}
	out := *r.attendances[id]
	return &out, nil
}

// GetByScanToken retrieves the attendance record for a scan token
func (r *MemoryAttendanceRepository) GetByScanToken(ctx context.Context, token string) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byToken[token]
	if !exists {
		return nil, domain.ErrAttendanceNotFound
	}
	out := *r.attendances[id]
	return &out, nil
}

// AddScan appends a scan entry and increments the total scan count
func (r *MemoryAttendanceRepository) AddScan(ctx context.Context, entry *domain.ScanEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, exists := r.attendances[entry.AttendanceID]
	if !exists || !att.IsActive {
		return domain.ErrAttendanceNotFound
	}

	att.TotalScans += entry.Count

	stored := *entry
	r.scans[entry.AttendanceID] = append(r.scans[entry.AttendanceID], &stored)
	return nil
}

// ListScans retrieves the scan history for an attendance record
func (r *MemoryAttendanceRepository) ListScans(ctx context.Context, attendanceID string) ([]*domain.ScanEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*domain.ScanEntry
	for _, entry := range r.scans[attendanceID] {
		out := *entry
		entries = append(entries, &out)
	}
	return entries, nil
}

// List retrieves attendance records ordered by creation time
func (r *MemoryAttendanceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*domain.Attendance, 0, len(r.attendances))
	for _, att := range r.attendances {
		out := *att
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
