package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

type videoRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	VideoURL     string         `db:"video_url"`
	ThumbnailURL string         `db:"thumbnail_url"`
	IsPublished  bool           `db:"is_published"`
	UploadedBy   sql.NullString `db:"uploaded_by"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r videoRow) domain() video.Video {
	return video.Video{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		IsPublished:  r.IsPublished,
		UploadedBy:   r.UploadedBy.String,
		CreatedAt:    r.CreatedAt,
	}
}

type videoRepository struct {
	db *sqlx.DB
}

var _ video.Repository = (*videoRepository)(nil) // interface compliance check

func NewVideoRepository(db *sqlx.DB) *videoRepository {
	return &videoRepository{db: db}
}

func (repo videoRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return video.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo videoRepository) CreateVideo(ctx context.Context, vid video.Video) (video.Video, error) {
	if vid.ID == "" {
		vid.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO video (id, title, description, video_url, thumbnail_url, is_published, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(
		ctx, query,
		vid.ID, vid.Title, vid.Description, vid.VideoURL, vid.ThumbnailURL,
		vid.IsPublished, nullStr(vid.UploadedBy), vid.CreatedAt.UTC(),
	)
	if err != nil {
		return video.Video{}, errors.Wrap(err, "inserting video")
	}
	return vid, nil
}

func (repo videoRepository) QueryVideos(ctx context.Context, filter *video.QueryFilter, ordering []core.DBOrdering) ([]video.Video, error) {
	query := `SELECT id, title, description, video_url, thumbnail_url, is_published, uploaded_by, created_at FROM video`
	var clauses []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", arg(val), arg(val)))
		}
		if filter.IsPublished != nil {
			clauses = append(clauses, "is_published = "+arg(*filter.IsPublished))
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += orderBy(ordering, "title", "created_at")

	var rows []videoRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying videos")
	}
	videos := make([]video.Video, 0, len(rows))
	for _, r := range rows {
		videos = append(videos, r.domain())
	}
	return videos, nil
}

func (repo videoRepository) GetVideoByID(ctx context.Context, id string) (video.Video, error) {
	if _, err := uuid.Parse(id); err != nil {
		return video.Video{}, video.ErrNotFound
	}
	const query = `SELECT id, title, description, video_url, thumbnail_url, is_published, uploaded_by, created_at FROM video WHERE id = $1`
	var row videoRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return video.Video{}, repo.trapNoRowsErr(err, "finding video by ID")
	}
	return row.domain(), nil
}

func (repo videoRepository) SetVideoPublished(ctx context.Context, id string, published bool) (video.Video, error) {
	const query = `UPDATE video SET is_published = $2 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id, published)
	if err != nil {
		return video.Video{}, errors.Wrap(err, "updating video published state")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return video.Video{}, video.ErrNotFound
	}
	return repo.GetVideoByID(ctx, id)
}

func (repo videoRepository) DeleteVideosByID(ctx context.Context, ids []string) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM video WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "deleting videos")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting videos")
	}
	return int(cnt), nil
}
