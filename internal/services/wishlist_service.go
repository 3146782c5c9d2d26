package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripmark/booking-backend/internal/cache"
	"github.com/tripmark/booking-backend/internal/database"
	"github.com/tripmark/booking-backend/internal/models"
	"github.com/tripmark/booking-backend/pkg/apperrors"
)

// WishlistService implements the idempotent membership toggle between a
// traveler and a package. The Redis mirror is advisory; cache failures
// are logged and never fail the operation.
type WishlistService struct {
	wishlistRepo *database.WishlistRepository
	cache        *cache.WishlistCache
	logger       *logrus.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo *database.WishlistRepository, wishlistCache *cache.WishlistCache, logger *logrus.Logger) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		cache:        wishlistCache,
		logger:       logger,
	}
}

// Toggle flips membership of (traveler, package) and reports the
// resulting state. Each branch is a single conditional statement at the
// storage layer, so two concurrent toggles settle on one winner instead
// of erroring.
func (s *WishlistService) Toggle(ctx context.Context, travelerID, packageID uuid.UUID) (bool, error) {
	removed, err := s.wishlistRepo.Remove(travelerID, packageID)
	if err != nil {
		return false, apperrors.NewInternalError("failed to toggle wishlist", err)
	}

	if removed {
		if err := s.cache.Remove(ctx, travelerID, packageID); err != nil {
			s.logger.WithError(err).Warn("wishlist cache remove failed")
		}
		return false, nil
	}

	// The insert reports false when a concurrent toggle inserted the
	// pair first; either way the pair is now a member.
	if _, err := s.wishlistRepo.Add(travelerID, packageID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperrors.NewNotFoundError(apperrors.CodePackageNotFound, "package not found")
		}
		return false, apperrors.NewInternalError("failed to toggle wishlist", err)
	}

	if err := s.cache.Add(ctx, travelerID, packageID); err != nil {
		s.logger.WithError(err).Warn("wishlist cache add failed")
	}

	return true, nil
}

// List retrieves the traveler's wishlist and refreshes the cached
// membership set from it
func (s *WishlistService) List(ctx context.Context, travelerID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByTraveler(travelerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list wishlist", err)
	}

	packageIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		packageIDs[i] = item.PackageID
	}
	if err := s.cache.Refresh(ctx, travelerID, packageIDs); err != nil {
		s.logger.WithError(err).Warn("wishlist cache refresh failed")
	}

	return items, nil
}
