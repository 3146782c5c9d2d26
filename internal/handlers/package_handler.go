package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// PackageHandler serves the read-only package catalog
type PackageHandler struct {
	packageRepo *database.PackageRepository
	logger      *logrus.Logger
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageRepo *database.PackageRepository, logger *logrus.Logger) *PackageHandler {
	return &PackageHandler{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// List returns all packages
// @Summary List packages
// @Tags Packages
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	packages, err := h.packageRepo.List()
	if err != nil {
		respondError(c, h.logger, apperrors.NewInternalError("failed to list packages", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    packages,
	})
}

// Get returns a single package by id
// @Summary Get a package
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /api/packages/{id} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NewValidationError("invalid package id"))
		return
	}

	pkg, err := h.packageRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, h.logger, apperrors.NewNotFoundError(apperrors.CodePackageNotFound, "package not found"))
			return
		}
		respondError(c, h.logger, apperrors.NewInternalError("failed to get package", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pkg,
	})
}
