package gateway

import (
	"context"
	"fmt"
)

// PaymentGateway creates checkout orders with the payment provider.
// The client completes the payment against the returned order and the
// callback is verified server-side against the provider signature.
type PaymentGateway interface {
	// CreateOrder registers an order with the provider
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error)

	// Name returns the gateway name
	Name() string
}

// OrderRequest represents an order creation request.
// Amount is in whole currency units; gateways convert to minor units.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// OrderResponse represents a created provider order
type OrderResponse struct {
	OrderID  string
	Amount   int64 // minor units, as held by the provider
	Currency string
	Status   string
}

// GatewayConfig holds common gateway configuration
type GatewayConfig struct {
	KeyID     string
	KeySecret string
}

// NewPaymentGateway creates a payment gateway by type
func NewPaymentGateway(gatewayType string, cfg *GatewayConfig) (PaymentGateway, error) {
	switch gatewayType {
	case "razorpay":
		if cfg == nil || cfg.KeyID == "" || cfg.KeySecret == "" {
			return nil, fmt.Errorf("razorpay gateway requires key id and key secret")
		}
		return NewRazorpayGateway(cfg), nil
	case "mock":
		return NewMockGateway(nil), nil
	default:
		return nil, fmt.Errorf("unknown gateway type: %s", gatewayType)
	}
}
