package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vidtube/account-service/internal/api/metrics"
	"github.com/vidtube/account-service/internal/core/ports"
)

// ChannelHandler exposes the derived channel and history reads.
type ChannelHandler struct {
	channels ports.ChannelService
}

func NewChannelHandler(channels ports.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// GetChannelProfile resolves a channel page by username. Works for anonymous
// viewers; when the request carries valid claims, IsSubscribed reflects the
// viewer's own subscription.
//
// @Summary      Get a channel profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Channel username (case-insensitive)"
// @Success      200       {object}  apiResponse
// @Failure      404       {object}  map[string]any
// @Router       /users/channel/{username} [get]
func (h *ChannelHandler) GetChannelProfile(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))

	timer := prometheus.NewTimer(metrics.ChannelProfileDuration)
	profile, err := h.channels.GetChannelProfile(c.Request().Context(), username, viewerID(c))
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, profile, "channel profile fetched successfully")
}

// GetWatchHistory returns the authenticated user's watch history, oldest
// first, with each video's owner projected in.
//
// @Summary      Get the watch history
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/history [get]
func (h *ChannelHandler) GetWatchHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	history, err := h.channels.GetWatchHistory(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, history, "watch history fetched successfully")
}
