package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aoacon/conference-backend/internal/dto"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/service"
)

// AttendanceHandler handles attendance HTTP endpoints
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Badge handles GET /api/v1/attendance/badge/me
func (h *AttendanceHandler) Badge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	badge, err := h.attendanceService.GetBadge(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, badge)
}

// CheckScan handles POST /api/v1/attendance/scan/check
func (h *AttendanceHandler) CheckScan(c *gin.Context) {
	var req dto.CheckScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	badge, err := h.attendanceService.CheckScan(c.Request.Context(), req.ScanToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, badge)
}

// MarkScan handles POST /api/v1/attendance/scan/mark
func (h *AttendanceHandler) MarkScan(c *gin.Context) {
	scannedBy, _ := middleware.GetUserID(c)

	var req dto.MarkScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	att, err := h.attendanceService.MarkScan(c.Request.Context(), scannedBy, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, dto.FromAttendance(att))
}

// ListScans handles GET /api/v1/attendance/:id/scans (admin)
func (h *AttendanceHandler) ListScans(c *gin.Context) {
	scans, err := h.attendanceService.ListScans(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.ScanEntryResponse, 0, len(scans))
	for _, scan := range scans {
		items = append(items, dto.FromScanEntry(scan))
	}
	response.Success(c, items)
}

// List handles GET /api/v1/attendance (admin)
func (h *AttendanceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	atts, err := h.attendanceService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]*dto.AttendanceResponse, 0, len(atts))
	for _, att := range atts {
		items = append(items, dto.FromAttendance(att))
	}
	response.Success(c, dto.AttendanceListResponse{Attendances: items, Total: len(items)})
}
