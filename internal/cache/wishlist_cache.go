package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// WishlistCache mirrors wishlist membership in a per-traveler Redis set.
// The database stays the source of truth; every method here is advisory
// and a nil receiver disables the cache entirely.
type WishlistCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistCache creates a wishlist cache over the given client
func NewWishlistCache(client *redis.Client) *WishlistCache {
	return &WishlistCache{
		client: client,
		ttl:    time.Hour,
	}
}

func wishlistKey(travelerID uuid.UUID) string {
	return fmt.Sprintf("wishlist:%s", travelerID)
}

// Add records a package in the traveler's cached set
func (c *WishlistCache) Add(ctx context.Context, travelerID, packageID uuid.UUID) error {
	if c == nil {
		return nil
	}

	key := wishlistKey(travelerID)
	if err := c.client.SAdd(ctx, key, packageID.String()).Err(); err != nil {
		return fmt.Errorf("failed to add to wishlist cache: %w", err)
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

// Remove drops a package from the traveler's cached set
func (c *WishlistCache) Remove(ctx context.Context, travelerID, packageID uuid.UUID) error {
	if c == nil {
		return nil
	}

	return c.client.SRem(ctx, wishlistKey(travelerID), packageID.String()).Err()
}

// Invalidate discards the traveler's cached set
func (c *WishlistCache) Invalidate(ctx context.Context, travelerID uuid.UUID) error {
	if c == nil {
		return nil
	}

	return c.client.Del(ctx, wishlistKey(travelerID)).Err()
}

// Refresh replaces the traveler's cached set with the given membership
func (c *WishlistCache) Refresh(ctx context.Context, travelerID uuid.UUID, packageIDs []uuid.UUID) error {
	if c == nil {
		return nil
	}

	key := wishlistKey(travelerID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(packageIDs) > 0 {
		members := make([]interface{}, len(packageIDs))
		for i, id := range packageIDs {
			members[i] = id.String()
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to refresh wishlist cache: %w", err)
	}
	return nil
}
