package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aoacon/conference-backend/internal/domain"
)

// MemoryRegistrationRepository implements RegistrationRepository using
// in-memory storage. Useful for testing and development.
type MemoryRegistrationRepository struct {
	registrations map[string]*domain.Registration
	byUser        map[string]string
	byNumber      map[string]string
	seq           int64
	year          int
	mu            sync.Mutex
}

// NewMemoryRegistrationRepository creates a new in-memory registration
// repository
func NewMemoryRegistrationRepository(year int) *MemoryRegistrationRepository {
	return &MemoryRegistrationRepository{
		registrations: make(map[string]*domain.Registration),
		byUser:        make(map[string]string),
		byNumber:      make(map[string]string),
		year:          year,
	}
}

// Create inserts a registration and assigns its sequence number
func (r *MemoryRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(reg)
}

// CreateWithCapacity inserts a registration only while fewer than
// capacity registrations of the same package type exist
func (r *MemoryRegistrationRepository) CreateWithCapacity(ctx context.Context, reg *domain.Registration, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, existing := range r.registrations {
		if existing.PackageType == reg.PackageType {
			count++
		}
	}
	if count >= capacity {
		return domain.ErrCourseCapacityFull
	}
	return r.insertLocked(reg)
}

func (r *MemoryRegistrationRepository) insertLocked(reg *domain.Registration) error {
	if _, exists := r.byUser[reg.UserID]; exists {
		return domain.ErrAlreadyRegistered
	}

	r.seq++
	reg.RegistrationNumber = domain.FormatRegistrationNumber(r.year, r.seq)

	stored := *reg
	r.registrations[reg.ID] = &stored
	r.byUser[reg.UserID] = reg.ID
	r.byNumber[reg.RegistrationNumber] = reg.ID
	return nil
}

// GetByID retrieves a registration by id
func (r *MemoryRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, exists := r.registrations[id]
	if !exists {
		return nil, domain.ErrRegistrationNotFound
	}
	out := *reg
	return &out, nil
}

// GetByUserID retrieves the registration belonging to a user
func (r *MemoryRegistrationRepository) GetByUserID(ctx context.Context, userID string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byUser[userID]
	if !exists {
		return nil, domain.ErrRegistrationNotFound
	}
	out := *r.registrations[id]
	return &out, nil
}

// GetByRegistrationNumber retrieves a registration by its number
func (r *MemoryRegistrationRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.byNumber[number]
	if !exists {
		return nil, domain.ErrRegistrationNotFound
	}
	out := *r.registrations[id]
	return &out, nil
}

// CountByPackageType counts registrations of a package type
func (r *MemoryRegistrationRepository) CountByPackageType(ctx context.Context, pkg domain.PackageType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, reg := range r.registrations {
		if reg.PackageType == pkg {
			count++
		}
	}
	return count, nil
}

// SetGatewayOrder records the gateway order id for a registration
func (r *MemoryRegistrationRepository) SetGatewayOrder(ctx context.Context, id, gatewayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, exists := r.registrations[id]
	if !exists {
		return domain.ErrRegistrationNotFound
	}
	reg.GatewayOrderID = gatewayOrderID
	return nil
}

// MarkPaid transitions a pending registration to PAID
func (r *MemoryRegistrationRepository) MarkPaid(ctx context.Context, id, gatewayPaymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, exists := r.registrations[id]
	if !exists {
		return domain.ErrRegistrationNotFound
	}
	return reg.MarkPaid(gatewayPaymentID)
}

// MarkFailed transitions a pending registration to FAILED
func (r *MemoryRegistrationRepository) MarkFailed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, exists := r.registrations[id]
	if !exists {
		return domain.ErrRegistrationNotFound
	}
	return reg.MarkFailed()
}

// List retrieves registrations ordered by creation time
func (r *MemoryRegistrationRepository) List(ctx context.Context, limit, offset int) ([]*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*domain.Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		out := *reg
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
