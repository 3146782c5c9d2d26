package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// ErrorResponse is the error payload shape for swagger docs
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

var statusByType = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeValidation:   http.StatusBadRequest,
	apperrors.ErrorTypeNotFound:     http.StatusNotFound,
	apperrors.ErrorTypeUnauthorized: http.StatusUnauthorized,
	apperrors.ErrorTypeForbidden:    http.StatusForbidden,
	apperrors.ErrorTypeConflict:     http.StatusConflict,
	apperrors.ErrorTypeInternal:     http.StatusInternalServerError,
}

// respondError maps a service error onto the shared failure shape.
// Unexpected errors are logged with their cause and surfaced as a 500.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	status, ok := statusByType[appErr.Type]
	if !ok {
		status = http.StatusInternalServerError
	}

	if appErr.Type == apperrors.ErrorTypeInternal {
		logger.WithError(appErr.Err).WithField("path", c.Request.URL.Path).Error(appErr.Message)
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Code,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request body: " + err.Error(),
		"error":   "invalid_request",
	})
}
