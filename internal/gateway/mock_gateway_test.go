package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGateway_CreateOrder(t *testing.T) {
	g := NewMockGateway(nil)

	resp, err := g.CreateOrder(context.Background(), &OrderRequest{
		Amount:   9440,
		Currency: "INR",
		Receipt:  "AOA2026-0001",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, int64(944000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "created", resp.Status)

	stored, ok := g.GetOrder(resp.OrderID)
	require.True(t, ok)
	assert.Equal(t, resp, stored)
}

func TestMockGateway_CreateOrder_DefaultsCurrency(t *testing.T) {
	g := NewMockGateway(nil)

	resp, err := g.CreateOrder(context.Background(), &OrderRequest{Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, "INR", resp.Currency)
}

func TestMockGateway_CreateOrder_InvalidAmount(t *testing.T) {
	g := NewMockGateway(nil)

	_, err := g.CreateOrder(context.Background(), &OrderRequest{Amount: 0})
	assert.Error(t, err)

	_, err = g.CreateOrder(context.Background(), nil)
	assert.Error(t, err)
}

func TestMockGateway_SetFailing(t *testing.T) {
	g := NewMockGateway(nil)
	g.SetFailing(true)

	_, err := g.CreateOrder(context.Background(), &OrderRequest{Amount: 100})
	assert.Error(t, err)

	g.SetFailing(false)
	_, err = g.CreateOrder(context.Background(), &OrderRequest{Amount: 100})
	assert.NoError(t, err)
}

func TestNewPaymentGateway(t *testing.T) {
	g, err := NewPaymentGateway("mock", nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", g.Name())

	g, err = NewPaymentGateway("razorpay", &GatewayConfig{KeyID: "rzp_test_key", KeySecret: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "razorpay", g.Name())

	_, err = NewPaymentGateway("razorpay", nil)
	assert.Error(t, err)

	_, err = NewPaymentGateway("paypal", nil)
	assert.Error(t, err)
}
