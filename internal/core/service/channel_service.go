package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/account-service/internal/core/domain"
	"github.com/vidtube/account-service/internal/core/ports"
)

// ChannelService is the read path over the user/subscription/video relations.
// Aggregates are composed from indexed count queries plus an existence check
// rather than pushed into a storage-side pipeline.
type ChannelService struct {
	users  ports.UserRepository
	subs   ports.SubscriptionRepository
	videos ports.VideoRepository
	cache  ports.ProfileCache // optional; nil disables caching
	log    zerolog.Logger
}

func NewChannelService(users ports.UserRepository, subs ports.SubscriptionRepository, videos ports.VideoRepository, cache ports.ProfileCache, log zerolog.Logger) *ChannelService {
	return &ChannelService{users: users, subs: subs, videos: videos, cache: cache, log: log}
}

// GetChannelProfile resolves the channel and computes its subscription
// aggregates. viewerID may be empty for anonymous viewers.
func (s *ChannelService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrValidation
	}

	if s.cache != nil {
		profile, ok, err := s.cache.Get(ctx, username, viewerID)
		if err != nil {
			s.log.Debug().Err(err).Str("username", username).Msg("profile cache read failed")
		} else if ok {
			return profile, nil
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subs.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	subscribedTo, err := s.subs.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count subscribed-to: %w", err)
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = s.subs.Exists(ctx, user.ID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
	}

	profile := &domain.ChannelProfile{
		ID:                        user.ID,
		Username:                  user.Username,
		FullName:                  user.FullName,
		AvatarURL:                 user.AvatarURL,
		CoverImageURL:             user.CoverImageURL,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, username, viewerID, profile); err != nil {
			s.log.Debug().Err(err).Str("username", username).Msg("profile cache write failed")
		}
	}

	return profile, nil
}

// GetWatchHistory resolves the user's history to video views with owner
// projections. An unknown user or empty history yields an empty slice.
// Dangling video or owner references are omitted from the result.
func (s *ChannelService) GetWatchHistory(ctx context.Context, userID string) ([]domain.VideoView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []domain.VideoView{}, nil
		}
		return nil, err
	}
	if len(user.WatchHistory) == 0 {
		return []domain.VideoView{}, nil
	}

	videos, err := s.videos.FindByIDs(ctx, user.WatchHistory)
	if err != nil {
		return nil, fmt.Errorf("resolve history videos: %w", err)
	}

	ownerIDs := make([]string, 0, len(videos))
	seen := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.OwnerID]; ok {
			continue
		}
		seen[v.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, v.OwnerID)
	}

	owners, err := s.users.FindManyByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve video owners: %w", err)
	}

	views := make([]domain.VideoView, 0, len(videos))
	for _, v := range videos {
		owner, ok := owners[v.OwnerID]
		if !ok {
			continue
		}
		views = append(views, domain.VideoView{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			VideoFileURL: v.VideoFileURL,
			ThumbnailURL: v.ThumbnailURL,
			DurationSec:  v.DurationSec,
			Views:        v.Views,
			CreatedAt:    v.CreatedAt,
			Owner: domain.VideoOwner{
				FullName:  owner.FullName,
				Username:  owner.Username,
				AvatarURL: owner.AvatarURL,
			},
		})
	}
	return views, nil
}

// RecordWatch appends the video to the user's watch history after checking
// that the video exists.
func (s *ChannelService) RecordWatch(ctx context.Context, userID, videoID string) error {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return err
	}
	return s.users.AppendWatchHistory(ctx, userID, videoID)
}
