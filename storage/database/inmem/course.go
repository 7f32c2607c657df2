package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		courses = append(courses, *c)
	}
	return courses
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	repo.db.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var courses []course.Course
	for _, crs := range repo.query() {
		if matchCourse(crs, filter) {
			courses = append(courses, crs)
		}
	}
	sortCourses(courses, ordering)
	return courses, nil
}

func matchCourse(crs course.Course, filter *course.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Search != "" && !containsFold(crs.Title, filter.Search) && !containsFold(crs.Description, filter.Search) {
		return false
	}
	if filter.CategoryID != "" && crs.CategoryID != filter.CategoryID {
		return false
	}
	if filter.IsPublished != nil && crs.IsPublished != *filter.IsPublished {
		return false
	}
	if !filter.CreatedFrom.IsZero() && crs.CreatedAt.Before(filter.CreatedFrom) {
		return false
	}
	if !filter.CreatedTo.IsZero() && crs.CreatedAt.After(filter.CreatedTo) {
		return false
	}
	return true
}

func sortCourses(courses []course.Course, ordering []core.DBOrdering) {
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		sort.SliceStable(courses, func(a, b int) bool {
			if !ord.Ascending {
				a, b = b, a
			}
			switch ord.Field {
			case "title":
				return courses[a].Title < courses[b].Title
			case "created_at":
				return courses[a].CreatedAt.Before(courses[b].CreatedAt)
			default:
				return courses[a].ID < courses[b].ID
			}
		})
	}
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[crs.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) SetCoursePublished(ctx context.Context, id string, published bool) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs, ok := repo.db.table[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	crs.IsPublished = published
	crs.UpdatedAt = time.Now().UTC()
	return *crs, nil
}

func (repo *courseRepository) DeleteCoursesByID(ctx context.Context, ids []string) (int, error) {
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
