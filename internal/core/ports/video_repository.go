package ports

import (
	"context"

	"github.com/vidtube/account-service/internal/core/domain"
)

// VideoRepository exposes read access to video records.
type VideoRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	// FindByIDs returns the videos that exist, preserving the order of ids.
	// IDs with no matching record are omitted, not errored.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Video, error)
}
