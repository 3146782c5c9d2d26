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

// WishlistHandler handles wishlist HTTP requests
type WishlistHandler struct {
	wishlistService *services.WishlistService
	logger          *logrus.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *services.WishlistService, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// Toggle flips the caller's wishlist membership for a package
// @Summary Toggle wishlist membership
// @Description Add the package if absent, remove it if present; returns the resulting state
// @Tags Wishlist
// @Accept json
// @Produce json
// @Param request body models.ToggleWishlistRequest true "Package to toggle"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/wishlist/toggle [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid package id"))
		return
	}

	isWishlisted, err := h.wishlistService.Toggle(c.Request.Context(), userCtx.UserID, packageID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"isWishlisted": isWishlisted,
	})
}

// MyWishlist lists the caller's wishlist
// @Summary List my wishlist
// @Tags Wishlist
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/wishlist/my-wishlist [get]
func (h *WishlistHandler) MyWishlist(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	items, err := h.wishlistService.List(c.Request.Context(), userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}
