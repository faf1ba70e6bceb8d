package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/gateway"
	"github.com/aoacon/conference-backend/internal/repository"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

const testHandlerKeySecret = "handler_key_secret"

type paymentTestEnv struct {
	router  *gin.Engine
	regRepo *repository.MemoryRegistrationRepository
	gw      *gateway.MockGateway
}

func newPaymentTestEnv(t *testing.T, userID string) *paymentTestEnv {
	t.Helper()
	regRepo := repository.NewMemoryRegistrationRepository(2026)
	accRepo := repository.NewMemoryAccommodationRepository()
	payRepo := repository.NewMemoryPaymentRepository()
	gw := gateway.NewMockGateway(nil)

	svc := service.NewPaymentService(payRepo, regRepo, accRepo, gw, &service.PaymentServiceConfig{
		KeyID:     "rzp_test_key",
		KeySecret: testHandlerKeySecret,
	})

	h := NewPaymentHandler(svc)
	router := gin.New()
	group := router.Group("/api/v1", testAuth(userID, false))
	group.POST("/payments/orders/registration", h.CreateRegistrationOrder)
	group.POST("/payments/verify", h.Verify)
	group.POST("/payments/failed", h.Failed)
	group.GET("/payments/me", h.ListMine)

	return &paymentTestEnv{router: router, regRepo: regRepo, gw: gw}
}

func (e *paymentTestEnv) seedRegistration(t *testing.T, userID string) *domain.Registration {
	t.Helper()
	reg, err := domain.NewRegistration(userID, domain.PackageConferenceOnly, "", 0, domain.PhaseEarlyBird, domain.PriceBreakdown{
		BasePrice:       8000,
		TotalWithoutGST: 8000,
		GST:             1440,
		TotalAmount:     9440,
	})
	require.NoError(t, err)
	require.NoError(t, e.regRepo.Create(t.Context(), reg))
	return reg
}

func handlerSign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testHandlerKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentHandler_OrderAndVerify(t *testing.T) {
	env := newPaymentTestEnv(t, "user-1")
	env.seedRegistration(t, "user-1")

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/payments/orders/registration", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	orderID := data["order_id"].(string)
	assert.Equal(t, float64(944000), data["amount"])

	w = doJSON(t, env.router, http.MethodPost, "/api/v1/payments/verify", gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  handlerSign(orderID, "pay_123"),
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, "SUCCESS", data["status"])
}

func TestPaymentHandler_Verify_BadSignature(t *testing.T) {
	env := newPaymentTestEnv(t, "user-1")
	env.seedRegistration(t, "user-1")

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/payments/orders/registration", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := resp.Data.(map[string]interface{})["order_id"].(string)

	w = doJSON(t, env.router, http.MethodPost, "/api/v1/payments/verify", gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  "ffff",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "SIGNATURE_MISMATCH", errResp.Error.Code)
}

func TestPaymentHandler_Order_GatewayDown(t *testing.T) {
	env := newPaymentTestEnv(t, "user-1")
	env.seedRegistration(t, "user-1")
	env.gw.SetFailing(true)

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/payments/orders/registration", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPaymentHandler_Order_NoRegistration(t *testing.T) {
	env := newPaymentTestEnv(t, "user-1")

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/payments/orders/registration", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_ListMine(t *testing.T) {
	env := newPaymentTestEnv(t, "user-1")
	env.seedRegistration(t, "user-1")

	w := doJSON(t, env.router, http.MethodPost, "/api/v1/payments/orders/registration", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/v1/payments/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}
