package ports

import (
	"context"

	"github.com/vidtube/account-service/internal/core/domain"
)

// ChannelService computes derived social/graph views over the user,
// subscription and video relations. All queries are read-only except
// RecordWatch.
type ChannelService interface {
	// GetChannelProfile resolves a channel by case-insensitive username and
	// decorates it with subscription aggregates. viewerID may be empty
	// (anonymous viewer), in which case IsSubscribed is always false.
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	// GetWatchHistory resolves the user's watch history to full video views
	// with owner projections. Missing users or videos yield an empty or
	// shortened sequence, never an error.
	GetWatchHistory(ctx context.Context, userID string) ([]domain.VideoView, error)
	// RecordWatch appends the video to the user's watch history.
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// WatchEvent is the DTO passed from the transport layer to the history
// dispatcher.
type WatchEvent struct {
	UserID  string
	VideoID string
}

// ProfileCache is a best-effort cache for channel profiles. Implementations
// must treat failures as misses; callers never fail a read on cache errors.
type ProfileCache interface {
	Get(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, bool, error)
	Set(ctx context.Context, username, viewerID string, profile *domain.ChannelProfile) error
}
