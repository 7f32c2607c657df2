package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryID   string    `json:"category_id"`
	InstructorID string    `json:"instructor_id"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
// Courses always start unpublished.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.CategoryID = core.CleanString(nc.CategoryID)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

func (uc *UpdateCourse) Validate(origCrs Course, validate *validator.Validate) error {
	title := core.CleanString(uc.Title)
	if title != "" {
		uc.Title = title
	} else {
		uc.Title = origCrs.Title
	}

	desc := core.CleanString(uc.Description)
	if desc != "" {
		uc.Description = desc
	} else {
		uc.Description = origCrs.Description
	}

	catID := core.CleanString(uc.CategoryID)
	if catID != "" {
		uc.CategoryID = catID
	} else {
		uc.CategoryID = origCrs.CategoryID
	}

	return validate.Struct(uc)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	CategoryID  string    `query:"category_id"`
	IsPublished *bool     `query:"is_published"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CategoryID == "" && qf.IsPublished == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.CategoryID = core.CleanString(qf.CategoryID)
}
