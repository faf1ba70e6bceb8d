package gateway

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MockGateway implements PaymentGateway for tests and local development.
// Orders are held in memory and order ids are deterministic within a
// process.
type MockGateway struct {
	config *MockGatewayConfig
	orders sync.Map // map[orderID]*OrderResponse
	seq    atomic.Int64

	mu   sync.RWMutex
	fail bool
}

// MockGatewayConfig holds configuration for the mock gateway
type MockGatewayConfig struct {
	// DelayMs is the simulated processing delay in milliseconds
	DelayMs int
}

// DefaultMockGatewayConfig returns default configuration
func DefaultMockGatewayConfig() *MockGatewayConfig {
	return &MockGatewayConfig{
		DelayMs: 0,
	}
}

// NewMockGateway creates a new mock gateway
func NewMockGateway(config *MockGatewayConfig) *MockGateway {
	if config == nil {
		config = DefaultMockGatewayConfig()
	}
	return &MockGateway{config: config}
}

// CreateOrder records a mock order and returns its id
func (g *MockGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}

	if g.config.DelayMs > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(g.config.DelayMs) * time.Millisecond):
		}
	}

	g.mu.RLock()
	fail := g.fail
	g.mu.RUnlock()
	if fail {
		return nil, fmt.Errorf("mock gateway unavailable")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	resp := &OrderResponse{
		OrderID:  fmt.Sprintf("order_mock_%06d", g.seq.Add(1)),
		Amount:   req.Amount * 100,
		Currency: currency,
		Status:   "created",
	}
	g.orders.Store(resp.OrderID, resp)
	return resp, nil
}

// GetOrder returns a previously created mock order
func (g *MockGateway) GetOrder(orderID string) (*OrderResponse, bool) {
	v, ok := g.orders.Load(orderID)
	if !ok {
		return nil, false
	}
	return v.(*OrderResponse), true
}

// SetFailing toggles order creation failures (for testing)
func (g *MockGateway) SetFailing(fail bool) {
	g.mu.Lock()
	g.fail = fail
	g.mu.Unlock()
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}
