package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/middleware"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/internal/services"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// FeedbackHandler handles feedback HTTP requests for both channels
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	logger          *logrus.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *services.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Add submits package feedback for a finished booking
// @Summary Submit package feedback
// @Description Rate the package of a finished booking; routed to the owning travel agent
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body models.CreateFeedbackRequest true "Feedback details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/feedback/add [post]
func (h *FeedbackHandler) Add(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.feedbackService.CreatePackageFeedback(userCtx.UserID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id": feedback.ID,
		"booking_id":  feedback.BookingID,
		"kind":        feedback.Kind(),
	}).Info("Feedback submitted")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Feedback submitted successfully",
	})
}

// GuideAdd submits guide feedback for a finished booking
// @Summary Submit guide feedback
// @Description Rate the guide who led a finished booking
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body models.CreateGuideFeedbackRequest true "Feedback details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/feedback/guide-add [post]
func (h *FeedbackHandler) GuideAdd(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateGuideFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.feedbackService.CreateGuideFeedback(userCtx.UserID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id": feedback.ID,
		"booking_id":  feedback.BookingID,
		"kind":        feedback.Kind(),
	}).Info("Feedback submitted")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Feedback submitted successfully",
	})
}

// ForAgent lists package feedback routed to an agent
// @Summary List an agent's package feedback
// @Tags Feedback
// @Produce json
// @Param agentId path string true "Agent ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/feedback/agent/{agentId} [get]
func (h *FeedbackHandler) ForAgent(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid agent id"))
		return
	}

	feedbacks, err := h.feedbackService.ListForAgent(agentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"feedbacks": feedbacks,
	})
}

// MyReviews lists guide feedback for the calling guide
// @Summary List the calling guide's feedback
// @Tags Feedback
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/feedback/my-reviews [get]
func (h *FeedbackHandler) MyReviews(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	feedbacks, err := h.feedbackService.ListForGuide(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"feedbacks": feedbacks,
	})
}

// Delete removes a feedback record the caller's audience owns
// @Summary Delete feedback
// @Description Agents may delete package feedback routed to them; guides their own guide feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/feedback/delete/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid feedback id"))
		return
	}

	if err := h.feedbackService.Delete(userCtx.UserID, userCtx.Role, feedbackID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id": feedbackID,
		"actor_id":    userCtx.UserID,
	}).Info("Feedback deleted")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback deleted successfully",
	})
}
