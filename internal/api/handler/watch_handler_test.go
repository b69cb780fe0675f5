package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/account-service/internal/core/ports"
)

type stubEnqueuer struct {
	events []ports.WatchEvent
}

func (s *stubEnqueuer) Enqueue(event ports.WatchEvent) {
	s.events = append(s.events, event)
}

func TestWatchHandler_RecordWatch(t *testing.T) {
	e := newEcho()
	queue := &stubEnqueuer{}
	h := NewWatchHandler(queue)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/video-9/watch", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("video-9")
	c.Set("user_id", "user-1")

	if err := h.RecordWatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(queue.events) != 1 || queue.events[0].UserID != "user-1" || queue.events[0].VideoID != "video-9" {
		t.Fatalf("event not enqueued correctly: %+v", queue.events)
	}
}

func TestWatchHandler_RecordWatch_MissingClaims(t *testing.T) {
	e := newEcho()
	queue := &stubEnqueuer{}
	h := NewWatchHandler(queue)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/video-9/watch", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("video-9")

	err := h.RecordWatch(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if len(queue.events) != 0 {
		t.Fatalf("event should not be enqueued for anonymous request")
	}
}
