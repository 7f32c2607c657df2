package core

import (
	"context"
	"io"
)

// FileStore is any object store that can hold uploaded assets (video files,
// thumbnails). Upload writes the content under bucket/path and returns the
// public URL the asset will be served from. There are no retries and no
// cleanup of already-written objects on a later failure.
type FileStore interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader) (string, error)
	PublicURL(bucket, path string) string
}
