package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements PaymentGateway using the Razorpay Orders API
type RazorpayGateway struct {
	client *razorpay.Client
	config *GatewayConfig
}

// NewRazorpayGateway creates a Razorpay-backed gateway
func NewRazorpayGateway(cfg *GatewayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		config: cfg,
	}
}

// CreateOrder registers an order with Razorpay. Amounts are sent in
// paise (minor units).
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is required")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	notes := map[string]interface{}{}
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":   req.Amount * 100,
		"currency": currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order create returned no order id")
	}

	resp := &OrderResponse{
		OrderID:  orderID,
		Amount:   req.Amount * 100,
		Currency: currency,
	}
	if status, ok := body["status"].(string); ok {
		resp.Status = status
	}
	return resp, nil
}

// Name returns the gateway name
func (g *RazorpayGateway) Name() string {
	return "razorpay"
}
