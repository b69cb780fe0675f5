package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vidtube/account-service/internal/core/domain"
)

type stubSubscriptionRepo struct {
	edges []domain.Subscription
}

func (r *stubSubscriptionRepo) CountByChannel(_ context.Context, channelID string) (int64, error) {
	var n int64
	for _, e := range r.edges {
		if e.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (r *stubSubscriptionRepo) CountBySubscriber(_ context.Context, subscriberID string) (int64, error) {
	var n int64
	for _, e := range r.edges {
		if e.SubscriberID == subscriberID {
			n++
		}
	}
	return n, nil
}

func (r *stubSubscriptionRepo) Exists(_ context.Context, channelID, subscriberID string) (bool, error) {
	for _, e := range r.edges {
		if e.ChannelID == channelID && e.SubscriberID == subscriberID {
			return true, nil
		}
	}
	return false, nil
}

type stubVideoRepo struct {
	videos map[string]*domain.Video
}

func (r *stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVideoRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Video, error) {
	out := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.videos[id]; ok {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func seedUser(repo *stubUserRepo, username string, history ...string) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		Username:  username,
		Email:     username + "@example.com",
		FullName:  "User " + username,
		AvatarURL: "https://media.example.com/" + username + ".png",
	})
	u.WatchHistory = history
	repo.users[u.ID].WatchHistory = history
	return u
}

func newChannelFixture() (*ChannelService, *stubUserRepo, *stubSubscriptionRepo, *stubVideoRepo) {
	users := newStubUserRepo()
	subs := &stubSubscriptionRepo{}
	videos := &stubVideoRepo{videos: make(map[string]*domain.Video)}
	svc := NewChannelService(users, subs, videos, nil, zerolog.Nop())
	return svc, users, subs, videos
}

func TestChannelService_GetChannelProfile_Counts(t *testing.T) {
	svc, users, subs, _ := newChannelFixture()
	channel := seedUser(users, "channel")
	fan1 := seedUser(users, "fan1")
	fan2 := seedUser(users, "fan2")
	other := seedUser(users, "other")

	subs.edges = []domain.Subscription{
		{SubscriberID: fan1.ID, ChannelID: channel.ID},
		{SubscriberID: fan2.ID, ChannelID: channel.ID},
		{SubscriberID: channel.ID, ChannelID: other.ID},
	}

	profile, err := svc.GetChannelProfile(context.Background(), "Channel", fan1.ID)
	if err != nil {
		t.Fatalf("GetChannelProfile returned error: %v", err)
	}
	if profile.SubscribersCount != 2 {
		t.Fatalf("expected 2 subscribers, got %d", profile.SubscribersCount)
	}
	if profile.ChannelsSubscribedToCount != 1 {
		t.Fatalf("expected 1 subscribed-to channel, got %d", profile.ChannelsSubscribedToCount)
	}
	if !profile.IsSubscribed {
		t.Fatalf("fan1 should be reported as subscribed")
	}
}

func TestChannelService_GetChannelProfile_IsSubscribed(t *testing.T) {
	svc, users, subs, _ := newChannelFixture()
	channel := seedUser(users, "channel")
	fan := seedUser(users, "fan")
	stranger := seedUser(users, "stranger")

	subs.edges = []domain.Subscription{{SubscriberID: fan.ID, ChannelID: channel.ID}}

	// Anonymous viewer.
	profile, err := svc.GetChannelProfile(context.Background(), "channel", "")
	if err != nil {
		t.Fatalf("anonymous profile lookup failed: %v", err)
	}
	if profile.IsSubscribed {
		t.Fatalf("anonymous viewer reported as subscribed")
	}

	profile, err = svc.GetChannelProfile(context.Background(), "channel", stranger.ID)
	if err != nil {
		t.Fatalf("profile lookup failed: %v", err)
	}
	if profile.IsSubscribed {
		t.Fatalf("non-subscriber reported as subscribed")
	}
}

func TestChannelService_GetChannelProfile_NotFound(t *testing.T) {
	svc, _, _, _ := newChannelFixture()

	if _, err := svc.GetChannelProfile(context.Background(), "ghost", ""); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GetChannelProfile(context.Background(), "  ", ""); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for blank username, got %v", err)
	}
}

func TestChannelService_GetWatchHistory(t *testing.T) {
	svc, users, _, videos := newChannelFixture()
	owner := seedUser(users, "owner")
	videos.videos["v1"] = &domain.Video{ID: "v1", OwnerID: owner.ID, Title: "first"}
	videos.videos["v2"] = &domain.Video{ID: "v2", OwnerID: owner.ID, Title: "second"}
	viewer := seedUser(users, "viewer", "v1", "v2")

	views, err := svc.GetWatchHistory(context.Background(), viewer.ID)
	if err != nil {
		t.Fatalf("GetWatchHistory returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(views))
	}
	if views[0].Title != "first" || views[1].Title != "second" {
		t.Fatalf("history order not preserved: %+v", views)
	}
	if views[0].Owner.Username != "owner" || views[0].Owner.FullName != "User owner" {
		t.Fatalf("owner projection wrong: %+v", views[0].Owner)
	}
}

func TestChannelService_GetWatchHistory_EmptyAndMissing(t *testing.T) {
	svc, users, _, videos := newChannelFixture()
	owner := seedUser(users, "owner")
	videos.videos["v1"] = &domain.Video{ID: "v1", OwnerID: owner.ID, Title: "kept"}
	videos.videos["orphan"] = &domain.Video{ID: "orphan", OwnerID: "user-404", Title: "dropped"}

	// No history at all.
	empty := seedUser(users, "empty")
	views, err := svc.GetWatchHistory(context.Background(), empty.ID)
	if err != nil {
		t.Fatalf("empty history errored: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty sequence, got %d entries", len(views))
	}

	// Unknown user: empty sequence, not an error.
	views, err = svc.GetWatchHistory(context.Background(), "user-404")
	if err != nil {
		t.Fatalf("unknown user errored: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty sequence for unknown user")
	}

	// Dangling video and owner references are omitted, not errors.
	viewer := seedUser(users, "viewer", "v1", "deleted-video", "orphan")
	views, err = svc.GetWatchHistory(context.Background(), viewer.ID)
	if err != nil {
		t.Fatalf("history with dangling refs errored: %v", err)
	}
	if len(views) != 1 || views[0].Title != "kept" {
		t.Fatalf("dangling references not omitted: %+v", views)
	}
}

func TestChannelService_RecordWatch(t *testing.T) {
	svc, users, _, videos := newChannelFixture()
	owner := seedUser(users, "owner")
	videos.videos["v1"] = &domain.Video{ID: "v1", OwnerID: owner.ID}
	viewer := seedUser(users, "viewer")

	if err := svc.RecordWatch(context.Background(), viewer.ID, "missing"); err != domain.ErrVideoNotFound {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	if err := svc.RecordWatch(context.Background(), viewer.ID, "v1"); err != nil {
		t.Fatalf("RecordWatch failed: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), viewer.ID)
	if len(stored.WatchHistory) != 1 || stored.WatchHistory[0] != "v1" {
		t.Fatalf("watch history not appended: %v", stored.WatchHistory)
	}
}
