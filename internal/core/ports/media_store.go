package ports

import (
	"context"
	"io"
)

// Upload is an inbound file handle passed from the transport layer.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// MediaStore abstracts the binary-object storage provider.
type MediaStore interface {
	// Store uploads the object and returns its public URL. Returns
	// domain.ErrUploadFailed (possibly wrapped) on failure.
	Store(ctx context.Context, upload Upload) (string, error)
	// Evict removes a previously stored object by its URL. Evicting an
	// object that no longer exists is not an error.
	Evict(ctx context.Context, url string) error
}
