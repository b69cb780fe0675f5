package domain

import (
	"errors"
	"time"
)

var ErrVideoNotFound = errors.New("video not found")

// Video is a media record owned by a User. This service only reads videos;
// the upload pipeline lives elsewhere.
type Video struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoFileURL string
	ThumbnailURL string
	DurationSec  float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
}

// VideoOwner is the minimal owner projection nested in watch-history entries.
type VideoOwner struct {
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// VideoView is a watch-history entry: a video with its owner resolved.
type VideoView struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoFileURL string     `json:"video_file"`
	ThumbnailURL string     `json:"thumbnail"`
	DurationSec  float64    `json:"duration"`
	Views        int64      `json:"views"`
	Owner        VideoOwner `json:"owner"`
	CreatedAt    time.Time  `json:"created_at"`
}
