package domain

import (
	"errors"
	"time"
)

var ErrValidation = errors.New("required field missing or malformed")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthorized = errors.New("unauthorized")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrUploadFailed = errors.New("file upload failed")
var ErrInternal = errors.New("internal error")

// User is the identity record backing a channel. Username is stored
// case-normalized to lowercase; username and email are unique.
type User struct {
	ID                 string
	Username           string
	Email              string
	FullName           string
	PasswordHash       string
	AvatarURL          string
	CoverImageURL      string
	// RefreshFingerprint is the single currently-valid refresh token.
	// Rotated on every login/refresh, cleared on logout.
	RefreshFingerprint string
	// WatchHistory holds video IDs in watch order, most recent last.
	WatchHistory []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the sanitized projection returned to clients: no password
// hash, no refresh fingerprint, no raw watch history.
type PublicUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"cover_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Sanitized strips credentials and internal fields from a User.
func (u *User) Sanitized() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}

// ChannelProfile is a User viewed as a channel, decorated with aggregate
// subscription counts relative to an optional viewer.
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"full_name"`
	AvatarURL                 string `json:"avatar"`
	CoverImageURL             string `json:"cover_image,omitempty"`
	SubscribersCount          int64  `json:"subscribers_count"`
	ChannelsSubscribedToCount int64  `json:"channels_subscribed_to_count"`
	IsSubscribed              bool   `json:"is_subscribed"`
}
