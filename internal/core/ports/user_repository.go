package ports

import (
	"context"

	"github.com/vidtube/account-service/internal/core/domain"
)

// ProfilePatch carries a partial profile update. Nil fields are omitted from
// the persisted update entirely (no-op fields are never written).
type ProfilePatch struct {
	FullName      *string
	Email         *string
	Username      *string
	AvatarURL     *string
	CoverImageURL *string
}

// IsEmpty reports whether the patch contains no fields to apply.
func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Username == nil &&
		p.AvatarURL == nil && p.CoverImageURL == nil
}

// UserRepository defines persistence operations for the credential store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email collides with an existing record.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername matches the case-normalized (lowercase) username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIdentifier matches either username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// FindManyByIDs returns the users that exist, keyed by ID. IDs with no
	// matching record are simply absent from the result.
	FindManyByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)

	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	// UpdateProfile applies only the non-nil patch fields and returns the
	// updated user.
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)

	// SetRefreshFingerprint unconditionally stores a new fingerprint,
	// invalidating whatever was there before.
	SetRefreshFingerprint(ctx context.Context, id string, fingerprint string) error
	// RotateRefreshFingerprint replaces the stored fingerprint with next only
	// if it still equals current (conditional update). Returns
	// domain.ErrUnauthorized when the stored value has already moved on, so
	// of two concurrent rotations at most one succeeds.
	RotateRefreshFingerprint(ctx context.Context, id string, current, next string) error
	// ClearRefreshFingerprint removes the fingerprint field from the record.
	// Idempotent: clearing an already-clear fingerprint succeeds.
	ClearRefreshFingerprint(ctx context.Context, id string) error

	// AppendWatchHistory appends a video ID to the user's watch history.
	AppendWatchHistory(ctx context.Context, id string, videoID string) error
}
