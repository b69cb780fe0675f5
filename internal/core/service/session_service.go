package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidtube/account-service/internal/core/domain"
	"github.com/vidtube/account-service/internal/core/ports"
	"github.com/vidtube/account-service/internal/pkg/password"
)

// SessionService orchestrates the account/session lifecycle against the
// credential store, the token service and the media store.
type SessionService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	media  ports.MediaStore
	log    zerolog.Logger
}

func NewSessionService(users ports.UserRepository, tokens ports.TokenService, media ports.MediaStore, log zerolog.Logger) *SessionService {
	return &SessionService{users: users, tokens: tokens, media: media, log: log}
}

// Register creates the account with a hashed password. It does not log the
// user in; issuing tokens is an explicit separate step.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) (*domain.PublicUser, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if fullName == "" || email == "" || username == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}
	if input.Avatar == nil {
		return nil, domain.ErrValidation
	}

	avatarURL, err := s.media.Store(ctx, *input.Avatar)
	if err != nil {
		return nil, err
	}
	var coverURL string
	if input.CoverImage != nil {
		coverURL, err = s.media.Store(ctx, *input.CoverImage)
		if err != nil {
			s.evict(ctx, avatarURL)
			return nil, err
		}
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		s.evict(ctx, avatarURL, coverURL)
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	})
	if err != nil {
		// The record was not persisted; do not leak the uploaded objects.
		s.evict(ctx, avatarURL, coverURL)
		return nil, err
	}
	return created.Sanitized(), nil
}

// Login authenticates by username or email and issues a fresh token pair,
// rotating the stored refresh fingerprint.
func (s *SessionService) Login(ctx context.Context, identifier, plain string) (*ports.LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !password.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshFingerprint(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	return &ports.LoginResult{User: user.Sanitized(), Tokens: pair}, nil
}

// Logout clears the stored refresh fingerprint. Calling it for a user who is
// already logged out succeeds and leaves the fingerprint cleared.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	return s.users.ClearRefreshFingerprint(ctx, userID)
}

// Refresh exchanges a valid, current refresh token for a new pair. The
// presented token must equal the stored fingerprint; a rotated-out token is
// rejected even if its signature and expiry are still good. Unexpected
// faults on this path are reported as a generic internal error.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("refresh: user lookup failed")
		return nil, domain.ErrInternal
	}
	if user.RefreshFingerprint == "" || user.RefreshFingerprint != refreshToken {
		return nil, domain.ErrUnauthorized
	}

	pair, err := s.issuePair(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("refresh: token issuance failed")
		return nil, domain.ErrInternal
	}

	// Conditional rotation: if another refresh got there first the stored
	// fingerprint no longer matches and this call must lose.
	if err := s.users.RotateRefreshFingerprint(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("refresh: fingerprint rotation failed")
		return nil, domain.ErrInternal
	}

	return &pair, nil
}

// ChangePassword re-hashes and persists the new password after verifying the
// old one. Only the password field is written.
func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// UpdateProfile diffs the input against the current record and persists only
// the fields that changed. Media replacement is upload-then-swap-then-evict:
// the old object is evicted only after the new one is stored and the update
// persisted, so an upload failure never loses the old asset.
func (s *SessionService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var patch ports.ProfilePatch
	if v := trimmed(input.FullName); v != nil && *v != user.FullName {
		patch.FullName = v
	}
	if v := trimmed(input.Email); v != nil && *v != user.Email {
		patch.Email = v
	}
	if v := trimmed(input.Username); v != nil {
		lower := strings.ToLower(*v)
		if lower != user.Username {
			patch.Username = &lower
		}
	}

	var evictOld, evictNew []string
	if input.Avatar != nil {
		url, err := s.media.Store(ctx, *input.Avatar)
		if err != nil {
			return nil, err
		}
		patch.AvatarURL = &url
		evictNew = append(evictNew, url)
		if user.AvatarURL != "" {
			evictOld = append(evictOld, user.AvatarURL)
		}
	}
	if input.CoverImage != nil {
		url, err := s.media.Store(ctx, *input.CoverImage)
		if err != nil {
			s.evict(ctx, evictNew...)
			return nil, err
		}
		patch.CoverImageURL = &url
		evictNew = append(evictNew, url)
		if user.CoverImageURL != "" {
			evictOld = append(evictOld, user.CoverImageURL)
		}
	}

	if patch.IsEmpty() {
		return user.Sanitized(), nil
	}

	updated, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		s.evict(ctx, evictNew...)
		return nil, err
	}

	// Old objects are now unreferenced. Eviction failures must not undo a
	// committed profile update; log and move on.
	s.evict(ctx, evictOld...)

	return updated.Sanitized(), nil
}

// GetUser returns the sanitized account record.
func (s *SessionService) GetUser(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *SessionService) issuePair(user *domain.User) (ports.TokenPair, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *SessionService) evict(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.media.Evict(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("media eviction failed")
		}
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
