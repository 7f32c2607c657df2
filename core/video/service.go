package video

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

var ErrNotFound = errors.New("video not found")

// Storage buckets for submitted assets.
const (
	VideoBucket     = "videos"
	ThumbnailBucket = "thumbnails"
)

var defaultOrdering = []core.DBOrdering{{Field: "created_at", Ascending: false}}

type (
	Repository interface {
		CreateVideo(ctx context.Context, vid Video) (Video, error)
		QueryVideos(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Video, error)
		GetVideoByID(ctx context.Context, id string) (Video, error)
		SetVideoPublished(ctx context.Context, id string, published bool) (Video, error)
		DeleteVideosByID(ctx context.Context, ids []string) (int, error)
	}

	ServiceInterface interface {
		Submit(ctx context.Context, nv NewVideo, videoFile, thumbFile *Upload, uploadedBy string) (Video, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Video, error)
		GetByID(ctx context.Context, id string) (Video, error)
		TogglePublished(ctx context.Context, id string) (Video, error)
		Delete(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo  Repository
		store core.FileStore
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, store core.FileStore) *Service {
	return &Service{
		repo:  repo,
		store: store,
	}
}

// Submit uploads the video file, then the optional thumbnail, and only then
// creates the Video record referencing the returned URLs. A failure at any
// step aborts with no record; an already-uploaded file may remain in
// storage unreferenced.
func (svc *Service) Submit(ctx context.Context, nv NewVideo, videoFile, thumbFile *Upload, uploadedBy string) (Video, error) {
	if videoFile == nil || videoFile.Content == nil {
		return Video{}, core.NewValidationError(nil, core.FieldError{Field: "video_file", Error: "a video file is required"})
	}

	id := uuid.New().String()

	videoURL, err := svc.store.Upload(ctx, VideoBucket, id+filepath.Ext(videoFile.Filename), videoFile.Content)
	if err != nil {
		return Video{}, errors.Wrap(err, "uploading video file")
	}

	var thumbURL string
	if thumbFile != nil && thumbFile.Content != nil {
		thumbURL, err = svc.store.Upload(ctx, ThumbnailBucket, id+filepath.Ext(thumbFile.Filename), thumbFile.Content)
		if err != nil {
			return Video{}, errors.Wrap(err, "uploading thumbnail")
		}
	}

	vid := Video{
		ID:           id,
		Title:        nv.Title,
		Description:  nv.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		IsPublished:  false,
		UploadedBy:   uploadedBy,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateVideo(ctx, vid)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Video, error) {
	if ordering == nil {
		ordering = defaultOrdering
	}
	return svc.repo.QueryVideos(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Video, error) {
	return svc.repo.GetVideoByID(ctx, id)
}

// TogglePublished flips the published flag via a single-field update.
func (svc *Service) TogglePublished(ctx context.Context, id string) (Video, error) {
	vid, err := svc.repo.GetVideoByID(ctx, id)
	if err != nil {
		return Video{}, err
	}
	return svc.repo.SetVideoPublished(ctx, id, !vid.IsPublished)
}

// Delete removes videos. Deleting an already-deleted id reports ErrNotFound.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	cnt, err := svc.repo.DeleteVideosByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
