package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/account-service/internal/core/domain"
)

type stubChannelService struct {
	profileFn func(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	historyFn func(ctx context.Context, userID string) ([]domain.VideoView, error)
	recordFn  func(ctx context.Context, userID, videoID string) error
}

func (s *stubChannelService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	return s.profileFn(ctx, username, viewerID)
}

func (s *stubChannelService) GetWatchHistory(ctx context.Context, userID string) ([]domain.VideoView, error) {
	return s.historyFn(ctx, userID)
}

func (s *stubChannelService) RecordWatch(ctx context.Context, userID, videoID string) error {
	return s.recordFn(ctx, userID, videoID)
}

func TestChannelHandler_GetChannelProfile_Anonymous(t *testing.T) {
	e := newEcho()
	stub := &stubChannelService{
		profileFn: func(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %q", username)
			}
			if viewerID != "" {
				t.Fatalf("anonymous request should have empty viewer, got %q", viewerID)
			}
			return &domain.ChannelProfile{ID: "user-1", Username: "alice", SubscribersCount: 3}, nil
		},
	}
	h := NewChannelHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := h.GetChannelProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := resp["data"].(map[string]any)
	if data["subscribers_count"] != float64(3) {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestChannelHandler_GetChannelProfile_ForwardsViewer(t *testing.T) {
	e := newEcho()
	stub := &stubChannelService{
		profileFn: func(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
			if viewerID != "viewer-7" {
				t.Fatalf("viewer not forwarded, got %q", viewerID)
			}
			return &domain.ChannelProfile{ID: "user-1", IsSubscribed: true}, nil
		},
	}
	h := NewChannelHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	c.Set("user_id", "viewer-7")

	if err := h.GetChannelProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestChannelHandler_GetChannelProfile_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubChannelService{
		profileFn: func(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewChannelHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	err := h.GetChannelProfile(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChannelHandler_GetWatchHistory(t *testing.T) {
	e := newEcho()
	stub := &stubChannelService{
		historyFn: func(ctx context.Context, userID string) ([]domain.VideoView, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return []domain.VideoView{
				{ID: "video-1", Title: "First", Owner: domain.VideoOwner{Username: "bob"}},
				{ID: "video-2", Title: "Second", Owner: domain.VideoOwner{Username: "carol"}},
			}, nil
		},
	}
	h := NewChannelHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")

	if err := h.GetWatchHistory(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := resp["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 history entries, got %+v", resp["data"])
	}
}

func TestChannelHandler_GetWatchHistory_MissingClaims(t *testing.T) {
	e := newEcho()
	h := NewChannelHandler(&stubChannelService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)
	rec := httptest.NewRecorder()

	err := h.GetWatchHistory(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
