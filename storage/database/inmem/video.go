package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

type videoRepository struct {
	db *videoTable
}

var _ video.Repository = (*videoRepository)(nil)

func NewVideoRepository(db *DB) *videoRepository {
	return &videoRepository{db: db.video}
}

func (repo *videoRepository) query() []video.Video {
	videos := make([]video.Video, 0, len(repo.db.table))
	for _, v := range repo.db.table {
		videos = append(videos, *v)
	}
	return videos
}

func (repo *videoRepository) CreateVideo(ctx context.Context, vid video.Video) (video.Video, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if vid.ID == "" {
		vid.ID = uuid.New().String()
	}
	repo.db.table[vid.ID] = &vid
	return vid, nil
}

func (repo *videoRepository) QueryVideos(ctx context.Context, filter *video.QueryFilter, ordering []core.DBOrdering) ([]video.Video, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var videos []video.Video
	for _, vid := range repo.query() {
		if matchVideo(vid, filter) {
			videos = append(videos, vid)
		}
	}
	sortVideos(videos, ordering)
	return videos, nil
}

func matchVideo(vid video.Video, filter *video.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Search != "" && !containsFold(vid.Title, filter.Search) && !containsFold(vid.Description, filter.Search) {
		return false
	}
	if filter.IsPublished != nil && vid.IsPublished != *filter.IsPublished {
		return false
	}
	return true
}

func sortVideos(videos []video.Video, ordering []core.DBOrdering) {
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		sort.SliceStable(videos, func(a, b int) bool {
			if !ord.Ascending {
				a, b = b, a
			}
			switch ord.Field {
			case "title":
				return videos[a].Title < videos[b].Title
			case "created_at":
				return videos[a].CreatedAt.Before(videos[b].CreatedAt)
			default:
				return videos[a].ID < videos[b].ID
			}
		})
	}
}

func (repo *videoRepository) GetVideoByID(ctx context.Context, id string) (video.Video, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if vid, ok := repo.db.table[id]; ok {
		return *vid, nil
	}
	return video.Video{}, video.ErrNotFound
}

func (repo *videoRepository) SetVideoPublished(ctx context.Context, id string, published bool) (video.Video, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	vid, ok := repo.db.table[id]
	if !ok {
		return video.Video{}, video.ErrNotFound
	}
	vid.IsPublished = published
	return *vid, nil
}

func (repo *videoRepository) DeleteVideosByID(ctx context.Context, ids []string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}
