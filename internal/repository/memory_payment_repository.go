package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aoacon/conference-backend/internal/domain"
)

// MemoryPaymentRepository implements PaymentRepository using in-memory
// storage. Useful for testing and development.
type MemoryPaymentRepository struct {
	payments       map[string]*domain.Payment
	byGatewayOrder map[string]string
	byUser         map[string][]string
	mu             sync.RWMutex
}

// NewMemoryPaymentRepository creates a new in-memory payment repository
func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments:       make(map[string]*domain.Payment),
		byGatewayOrder: make(map[string]string),
		byUser:         make(map[string][]string),
	}
}

// Create creates a new payment record
func (r *MemoryPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.ID]; exists {
		return domain.ErrPaymentAlreadyExists
	}
	if _, exists := r.byGatewayOrder[payment.GatewayOrderID]; exists {
		return domain.ErrPaymentAlreadyExists
	}

	p := *payment
	r.payments[payment.ID] = &p
	r.byGatewayOrder[payment.GatewayOrderID] = payment.ID
	r.byUser[payment.UserID] = append(r.byUser[payment.UserID], payment.ID)
	return nil
}

// GetByID retrieves a payment by its ID
func (r *MemoryPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, exists := r.payments[id]
	if !exists {
		return nil, domain.ErrPaymentNotFound
	}
	p := *payment
	return &p, nil
}

// GetByGatewayOrderID retrieves a payment by its gateway order id
func (r *MemoryPaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byGatewayOrder[gatewayOrderID]
	if !exists {
		return nil, domain.ErrPaymentNotFound
	}
	p := *r.payments[id]
	return &p, nil
}

// GetPendingByTarget retrieves the open pending payment for a target record
func (r *MemoryPaymentRepository) GetPendingByTarget(ctx context.Context, target domain.PaymentTarget, targetID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Payment
	for _, payment := range r.payments {
		if payment.Target != target || payment.Status != domain.PaymentStatusPending {
			continue
		}
		if payment.TargetID() != targetID {
			continue
		}
		if latest == nil || payment.CreatedAt.After(latest.CreatedAt) {
			latest = payment
		}
	}
	if latest == nil {
		return nil, domain.ErrPaymentNotFound
	}
	p := *latest
	return &p, nil
}

// GetByUserID retrieves all payments for a user
func (r *MemoryPaymentRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []*domain.Payment
	for _, id := range r.byUser[userID] {
		p := *r.payments[id]
		payments = append(payments, &p)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})

	if offset >= len(payments) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(payments) {
		end = len(payments)
	}
	return payments[offset:end], nil
}

// Update updates an existing payment
func (r *MemoryPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.ID]; !exists {
		return domain.ErrPaymentNotFound
	}
	p := *payment
	r.payments[payment.ID] = &p
	return nil
}
