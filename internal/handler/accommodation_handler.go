package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

// AccommodationHandler handles accommodation HTTP endpoints
type AccommodationHandler struct {
	accommodationService service.AccommodationService
}

// NewAccommodationHandler creates a new AccommodationHandler
func NewAccommodationHandler(accommodationService service.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{accommodationService: accommodationService}
}

// List handles GET /api/v1/accommodations
func (h *AccommodationHandler) List(c *gin.Context) {
	accs, err := h.accommodationService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.AccommodationResponse, 0, len(accs))
	for _, acc := range accs {
		items = append(items, dto.FromAccommodation(acc))
	}
	response.Success(c, items)
}

// Get handles GET /api/v1/accommodations/:id
func (h *AccommodationHandler) Get(c *gin.Context) {
	acc, err := h.accommodationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromAccommodation(acc))
}

// Create handles POST /api/v1/accommodations (admin)
func (h *AccommodationHandler) Create(c *gin.Context) {
	var req dto.CreateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	acc, err := h.accommodationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, dto.FromAccommodation(acc))
}

// CreateBooking handles POST /api/v1/accommodations/:id/bookings
func (h *AccommodationHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.accommodationService.CreateBooking(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, dto.FromBooking(booking))
}

// MyBookings handles GET /api/v1/accommodations/bookings/me
func (h *AccommodationHandler) MyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	bookings, err := h.accommodationService.GetMyBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, dto.FromBooking(booking))
	}
	response.Success(c, items)
}
