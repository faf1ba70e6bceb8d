package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

// RegistrationHandler handles registration HTTP endpoints
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Create handles POST /api/v1/registrations
func (h *RegistrationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, dto.FromRegistration(reg))
}

// GetMine handles GET /api/v1/registrations/me
func (h *RegistrationHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	reg, err := h.registrationService.GetMyRegistration(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromRegistration(reg))
}

// Pricing handles GET /api/v1/registrations/pricing
func (h *RegistrationHandler) Pricing(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req dto.PricingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.PackageType == "" {
		quotes, phase, err := h.registrationService.QuoteMatrix(c.Request.Context(), userID, req.AccompanyingPersons)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, dto.FromPriceMatrix(quotes, phase))
		return
	}

	price, phase, err := h.registrationService.Quote(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromPriceBreakdown(price, phase))
}

// List handles GET /api/v1/registrations (admin)
func (h *RegistrationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	regs, err := h.registrationService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		items = append(items, dto.FromRegistration(reg))
	}
	response.Success(c, dto.RegistrationListResponse{Registrations: items, Total: len(items)})
}
