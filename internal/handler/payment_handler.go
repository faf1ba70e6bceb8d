package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

// PaymentHandler handles payment HTTP endpoints
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateRegistrationOrder handles POST /api/v1/payments/orders/registration
func (h *PaymentHandler) CreateRegistrationOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	order, err := h.paymentService.CreateRegistrationOrder(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, order)
}

// CreateAccommodationOrder handles POST /api/v1/payments/orders/accommodation
func (h *PaymentHandler) CreateAccommodationOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.CreateAccommodationOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.paymentService.CreateAccommodationOrder(c.Request.Context(), userID, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, order)
}

// Verify handles POST /api/v1/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.VerifyPayment(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromPayment(payment))
}

// Failed handles POST /api/v1/payments/failed
func (h *PaymentHandler) Failed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.PaymentFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.MarkFailed(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromPayment(payment))
}

// Reconcile handles POST /api/v1/payments/:orderId/reconcile (admin)
func (h *PaymentHandler) Reconcile(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		response.BadRequest(c, "order id is required")
		return
	}

	payment, err := h.paymentService.Reconcile(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromPayment(payment))
}

// ListMine handles GET /api/v1/payments/me
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.paymentService.GetUserPayments(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, dto.FromPayment(payment))
	}
	response.Success(c, dto.PaymentListResponse{Payments: items, Total: len(items)})
}
