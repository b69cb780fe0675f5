package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidtube/account-service/internal/core/domain"
)

// ProfileCache caches computed channel profiles under a short TTL. The key
// includes the viewer because IsSubscribed is viewer-relative.
// Key format: channel:<username>:<viewer_id|anon>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps the given Redis client. A non-positive ttl falls
// back to 30 seconds.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func (c *ProfileCache) Get(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, bool, error) {
	raw, err := c.client.Get(ctx, c.key(username, viewerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var profile domain.ChannelProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &profile, true, nil
}

func (c *ProfileCache) Set(ctx context.Context, username, viewerID string, profile *domain.ChannelProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(username, viewerID), raw, c.ttl).Err()
}

func (c *ProfileCache) key(username, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return fmt.Sprintf("channel:%s:%s", username, viewerID)
}
