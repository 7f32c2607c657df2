package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSFTPStore_Defaults(t *testing.T) {
	store := NewSFTPStore("media.unesum.test", 0, "uploader", "pwd", "", "http://media.unesum.test/")

	assert.Equal(t, "media.unesum.test:22", store.addr)
	assert.Equal(t, "/", store.remoteDir)
	assert.Equal(t, "http://media.unesum.test/videos/abc.mp4", store.PublicURL("videos", "abc.mp4"))
}

func TestSFTPStore_UploadCanceled(t *testing.T) {
	store := NewSFTPStore("media.unesum.test", 2222, "uploader", "pwd", "/srv/media", "http://media.unesum.test")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "videos", "abc.mp4", strings.NewReader("datadata"))
	require.Error(t, err)
	assert.Equal(t, context.Canceled, errors.Cause(err))
}
