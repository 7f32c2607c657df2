package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
)

type categoryRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	Color       string `db:"color"`
}

func (r categoryRow) domain() category.Category {
	return category.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        category.Icon(r.Icon),
		Color:       r.Color,
	}
}

type categoryRepository struct {
	db *sqlx.DB
}

var _ category.Repository = (*categoryRepository)(nil) // interface compliance check

func NewCategoryRepository(db *sqlx.DB) *categoryRepository {
	return &categoryRepository{db: db}
}

func (repo categoryRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return category.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo categoryRepository) CreateCategory(ctx context.Context, cat category.Category) (category.Category, error) {
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO category (id, name, description, icon, color)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := repo.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Description, cat.Icon.String(), cat.Color)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return category.Category{}, category.ErrNameExists
		}
		return category.Category{}, errors.Wrap(err, "inserting category")
	}
	return cat, nil
}

func (repo categoryRepository) QueryCategories(ctx context.Context, ordering []core.DBOrdering) ([]category.Category, error) {
	query := `SELECT id, name, description, icon, color FROM category` + orderBy(ordering, "name")

	var rows []categoryRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	cats := make([]category.Category, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, r.domain())
	}
	return cats, nil
}

func (repo categoryRepository) GetCategoryByID(ctx context.Context, id string) (category.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return category.Category{}, category.ErrNotFound
	}
	const query = `SELECT id, name, description, icon, color FROM category WHERE id = $1`
	var row categoryRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return category.Category{}, repo.trapNoRowsErr(err, "finding category by ID")
	}
	return row.domain(), nil
}
