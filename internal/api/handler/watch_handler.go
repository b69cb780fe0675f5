package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/account-service/internal/core/ports"
)

// WatchEnqueuer accepts watch events for asynchronous processing.
type WatchEnqueuer interface {
	Enqueue(event ports.WatchEvent)
}

// WatchHandler records video watches. The append itself happens on a worker
// goroutine, so the endpoint returns 202 rather than 200.
type WatchHandler struct {
	queue WatchEnqueuer
}

func NewWatchHandler(queue WatchEnqueuer) *WatchHandler {
	return &WatchHandler{queue: queue}
}

// RecordWatch enqueues a watch event for the given video.
//
// @Summary      Record that the current user watched a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      202  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /videos/{id}/watch [post]
func (h *WatchHandler) RecordWatch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	videoID := c.Param("id")
	if videoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "video id is required")
	}

	h.queue.Enqueue(ports.WatchEvent{UserID: userID, VideoID: videoID})
	return respond(c, http.StatusAccepted, nil, "watch event accepted")
}
