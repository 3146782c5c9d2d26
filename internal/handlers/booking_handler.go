package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/middleware"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/internal/services"
	"github.com/tripmark/booking-backend/internal/utils"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// BookingHandler handles booking lifecycle HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
	auditService   *services.AuditService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, auditService *services.AuditService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		auditService:   auditService,
		logger:         logger,
	}
}

// Create creates a new booking for the calling traveler
// @Summary Create a booking
// @Description Reserve a package; total price is computed server-side from the package unit price
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/bookings/create [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := h.bookingService.Create(userCtx.UserID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"traveler_id": booking.TravelerID,
		"package_id":  booking.PackageID,
		"total_price": booking.TotalPrice,
	}).Info("Booking created")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": booking,
	})
}

// MyBookings lists the calling traveler's bookings
// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/bookings/my-bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.ListForTraveler(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// UpdateStatus transitions a booking's status
// @Summary Transition a booking's status
// @Description Apply a state transition; the required actor role depends on the transition
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/bookings/update-status [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid booking id"))
		return
	}

	booking, err := h.bookingService.UpdateStatus(userCtx.UserID, userCtx.Role, bookingID, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.auditService.LogBookingTransition(userCtx.UserID, booking.ID, booking.Status, utils.GetRealIP(c), utils.GetUserAgent(c))

	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"actor_id":   userCtx.UserID,
		"actor_role": userCtx.Role,
	}).Info("Booking status updated")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// GuideAssignments lists the calling guide's confirmed bookings
// @Summary List assignments for the calling guide
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/bookings/guide-assignments [get]
func (h *BookingHandler) GuideAssignments(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.ListForGuide(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// All lists every booking
// @Summary List all bookings
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/bookings/all [get]
func (h *BookingHandler) All(c *gin.Context) {
	bookings, err := h.bookingService.ListAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}
