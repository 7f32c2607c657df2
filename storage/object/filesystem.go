// Package objectstore provides core.FileStore implementations for
// uploaded course assets.
package objectstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

type filesystemStore struct {
	baseDir string
	baseURL string
}

var _ core.FileStore = (*filesystemStore)(nil) // interface compliance check

// NewFilesystemStore stores uploads under baseDir/<bucket>/<path> and serves
// them from baseURL/<bucket>/<path>.
func NewFilesystemStore(baseDir, baseURL string) (*filesystemStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating media dir")
	}
	return &filesystemStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *filesystemStore) Upload(ctx context.Context, bucket, path string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.baseDir, bucket, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", errors.Wrap(err, "creating bucket dir")
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer out.Close()

	if _, err = io.Copy(out, r); err != nil {
		return "", errors.Wrap(err, "writing file")
	}
	return s.PublicURL(bucket, path), nil
}

func (s *filesystemStore) PublicURL(bucket, path string) string {
	return s.baseURL + "/" + bucket + "/" + strings.TrimPrefix(path, "/")
}
