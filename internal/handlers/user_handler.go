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

// UserHandler handles registration, login and the admin approval gate
type UserHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
	logger       *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *services.AuthService, auditService *services.AuditService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		authService:  authService,
		auditService: auditService,
		logger:       logger,
	}
}

// Register handles account creation
// @Summary Register a new account
// @Description Create an account; travel agents start pending admin approval
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.auditService.LogRegistration(user.ID, user.Role, utils.GetRealIP(c), utils.GetUserAgent(c))

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
		"status":  user.Status,
	}).Info("Account registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      user.ID,
		"status":  user.Status,
	})
}

// Login handles authentication
// @Summary Log in
// @Description Authenticate with email, password and intended role; returns a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		reason := ""
		if appErr, ok := apperrors.AsAppError(err); ok {
			reason = appErr.Code
		}
		h.auditService.LogLogin(nil, req.Email, false, reason, utils.GetRealIP(c), utils.GetUserAgent(c))
		respondError(c, h.logger, err)
		return
	}

	h.auditService.LogLogin(&resp.User.ID, req.Email, true, "", utils.GetRealIP(c), utils.GetUserAgent(c))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// PendingRequests lists travel agents awaiting approval
// @Summary List pending travel agents
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/user/pending-requests [get]
func (h *UserHandler) PendingRequests(c *gin.Context) {
	requests, err := h.authService.PendingAgents()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
	})
}

// ApproveUser approves a pending travel agent
// @Summary Approve a pending travel agent
// @Tags Users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/user/approve-user/{id} [put]
func (h *UserHandler) ApproveUser(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid account id"))
		return
	}

	if err := h.authService.Approve(accountID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	userCtx := middleware.MustGetUserContext(c)
	h.auditService.LogApproval(userCtx.UserID, accountID, utils.GetRealIP(c), utils.GetUserAgent(c))

	h.logger.WithFields(logrus.Fields{
		"admin_id": userCtx.UserID,
		"agent_id": accountID,
	}).Info("Travel agent approved")

	c.JSON(http.StatusOK, gin.H{
		"message": "User approved successfully",
	})
}

// RejectUser rejects a pending travel agent. The account is hard
// deleted; rejection is non-recoverable.
// @Summary Reject a pending travel agent
// @Tags Users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/user/reject-user/{id} [delete]
func (h *UserHandler) RejectUser(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid account id"))
		return
	}

	if err := h.authService.Reject(accountID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	userCtx := middleware.MustGetUserContext(c)
	h.auditService.LogRejection(userCtx.UserID, accountID, utils.GetRealIP(c), utils.GetUserAgent(c))

	h.logger.WithFields(logrus.Fields{
		"admin_id": userCtx.UserID,
		"agent_id": accountID,
	}).Info("Travel agent rejected")

	c.JSON(http.StatusOK, gin.H{
		"message": "User rejected and removed",
	})
}
