package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aoacon/conference-backend/internal/domain"
	"github.com/aoacon/conference-backend/internal/logger"
	"github.com/aoacon/conference-backend/internal/middleware"
	"github.com/aoacon/conference-backend/internal/response"
	"github.com/aoacon/conference-backend/internal/telemetry"
)

// respondError maps a domain error to the right HTTP status
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, domain.ErrSignatureMismatch):
		userID, _ := middleware.GetUserID(c)
		logger.Get().Warn("payment signature verification failed",
			zap.String("user_id", userID),
			zap.String("trace_id", telemetry.GetTraceID(c.Request.Context())),
		)
		response.Error(c, http.StatusBadRequest, "SIGNATURE_MISMATCH", "payment signature verification failed", "")
	case errors.Is(err, domain.ErrGatewayUnavailable):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "payment gateway is unavailable", "")
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, "CONFLICT", err.Error())
	case domain.IsValidationError(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
	default:
		response.InternalError(c, err)
	}
}
