package ports

import "context"

// SubscriptionRepository exposes read-only aggregation over subscription
// edges. Edge creation/deletion is handled by another service.
type SubscriptionRepository interface {
	// CountByChannel counts edges pointing at the channel (its subscribers).
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	// CountBySubscriber counts edges leaving the user (channels they follow).
	CountBySubscriber(ctx context.Context, subscriberID string) (int64, error)
	// Exists reports whether subscriberID is subscribed to channelID.
	Exists(ctx context.Context, channelID, subscriberID string) (bool, error)
}
