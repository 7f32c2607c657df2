package video

import (
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPublished  bool      `json:"is_published"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

// NewVideo contains the metadata submitted alongside the uploaded files.
type NewVideo struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (nv *NewVideo) Validate(validate *validator.Validate) error {
	nv.Title = core.CleanString(nv.Title)
	nv.Description = core.CleanString(nv.Description)
	return validate.Struct(nv)
}

// Upload is a file submitted as part of a video submission.
type Upload struct {
	Filename string
	Content  io.Reader
}

type QueryFilter struct {
	Search      string `query:"search"`
	IsPublished *bool  `query:"is_published"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.IsPublished == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
