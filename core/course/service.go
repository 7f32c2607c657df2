package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

var ErrNotFound = errors.New("course not found")

// defaultOrdering keeps newest courses first so a fresh list fetch shows
// the latest creation on top regardless of insertion order.
var defaultOrdering = []core.DBOrdering{{Field: "created_at", Ascending: false}}

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryCourses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Course.Title or Course.Description.
		QueryCourses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		SetCoursePublished(ctx context.Context, id string, published bool) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids []string) (int, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewCourse, instructorID string) (Course, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
		Update(ctx context.Context, id string, uc UpdateCourse) (Course, error)
		TogglePublished(ctx context.Context, id string) (Course, error)
		Delete(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse, instructorID string) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:        nc.Title,
		Description:  nc.Description,
		CategoryID:   nc.CategoryID,
		InstructorID: instructorID,
		IsPublished:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error) {
	if ordering == nil {
		ordering = defaultOrdering
	}
	return svc.repo.QueryCourses(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	crs.Title = uc.Title
	crs.Description = uc.Description
	crs.CategoryID = uc.CategoryID
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, crs)
}

// TogglePublished flips the published flag via a single-field update.
func (svc *Service) TogglePublished(ctx context.Context, id string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	return svc.repo.SetCoursePublished(ctx, id, !crs.IsPublished)
}

// Delete removes courses. Deleting an already-deleted id reports ErrNotFound.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	cnt, err := svc.repo.DeleteCoursesByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
