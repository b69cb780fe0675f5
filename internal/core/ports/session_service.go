package ports

import (
	"context"

	"github.com/vidtube/account-service/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Avatar is
// required; CoverImage is optional.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *Upload
	CoverImage *Upload
}

// UpdateProfileInput carries an account update. All fields are optional;
// fields equal to the current value are dropped before persisting.
type UpdateProfileInput struct {
	FullName   *string
	Email      *string
	Username   *string
	Avatar     *Upload
	CoverImage *Upload
}

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult bundles the sanitized user with its session tokens.
type LoginResult struct {
	User   *domain.PublicUser
	Tokens TokenPair
}

// SessionService orchestrates the authentication/session lifecycle.
type SessionService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.PublicUser, error)
	// Login accepts a username or email as identifier.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	// Logout clears the stored refresh fingerprint. Idempotent.
	Logout(ctx context.Context, userID string) error
	// Refresh validates the presented refresh token against the stored
	// fingerprint and rotates it, returning a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.PublicUser, error)
	GetUser(ctx context.Context, userID string) (*domain.PublicUser, error)
}
