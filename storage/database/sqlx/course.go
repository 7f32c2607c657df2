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
	"github.com/Dagua-alejandro/unesum-redes-academico/core/course"
)

type courseRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	CategoryID   string         `db:"category_id"`
	InstructorID sql.NullString `db:"instructor_id"`
	IsPublished  bool           `db:"is_published"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r courseRow) domain() course.Course {
	return course.Course{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		InstructorID: r.InstructorID.String,
		IsPublished:  r.IsPublished,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO course (id, title, description, category_id, instructor_id, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(
		ctx, query,
		crs.ID, crs.Title, crs.Description, crs.CategoryID, nullStr(crs.InstructorID),
		crs.IsPublished, crs.CreatedAt.UTC(), crs.UpdatedAt.UTC(),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	query := `SELECT id, title, description, category_id, instructor_id, is_published, created_at, updated_at FROM course`
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
		if filter.CategoryID != "" {
			clauses = append(clauses, "category_id = "+arg(filter.CategoryID))
		}
		if filter.IsPublished != nil {
			clauses = append(clauses, "is_published = "+arg(*filter.IsPublished))
		}
		if !filter.CreatedFrom.IsZero() {
			clauses = append(clauses, "created_at >= "+arg(filter.CreatedFrom.UTC()))
		}
		if !filter.CreatedTo.IsZero() {
			clauses = append(clauses, "created_at <= "+arg(filter.CreatedTo.UTC()))
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += orderBy(ordering, "title", "created_at", "updated_at")

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.domain())
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return course.Course{}, course.ErrNotFound
	}
	const query = `SELECT id, title, description, category_id, instructor_id, is_published, created_at, updated_at FROM course WHERE id = $1`
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course by ID")
	}
	return row.domain(), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	const query = `
		UPDATE course
		SET title = $2, description = $3, category_id = $4, is_published = $5, updated_at = $6
		WHERE id = $1`
	res, err := repo.db.ExecContext(
		ctx, query,
		crs.ID, crs.Title, crs.Description, crs.CategoryID, crs.IsPublished, crs.UpdatedAt.UTC(),
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo courseRepository) SetCoursePublished(ctx context.Context, id string, published bool) (course.Course, error) {
	const query = `UPDATE course SET is_published = $2, updated_at = $3 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id, published, time.Now().UTC())
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course published state")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourseByID(ctx, id)
}

func (repo courseRepository) DeleteCoursesByID(ctx context.Context, ids []string) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "deleting courses")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting courses")
	}
	return int(cnt), nil
}
