package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
)

type categoryRepository struct {
	db *categoryTable
}

var _ category.Repository = (*categoryRepository)(nil)

func NewCategoryRepository(db *DB) *categoryRepository {
	return &categoryRepository{db: db.category}
}

func (repo *categoryRepository) CreateCategory(ctx context.Context, cat category.Category) (category.Category, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, known := range repo.db.table {
		if known.Name == cat.Name {
			return category.Category{}, category.ErrNameExists
		}
	}
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	repo.db.table[cat.ID] = &cat
	return cat, nil
}

func (repo *categoryRepository) QueryCategories(ctx context.Context, ordering []core.DBOrdering) ([]category.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cats := make([]category.Category, 0, len(repo.db.table))
	for _, cat := range repo.db.table {
		cats = append(cats, *cat)
	}
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		sort.SliceStable(cats, func(a, b int) bool {
			if !ord.Ascending {
				a, b = b, a
			}
			switch ord.Field {
			case "name":
				return cats[a].Name < cats[b].Name
			default:
				return cats[a].ID < cats[b].ID
			}
		})
	}
	return cats, nil
}

func (repo *categoryRepository) GetCategoryByID(ctx context.Context, id string) (category.Category, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cat, ok := repo.db.table[id]; ok {
		return *cat, nil
	}
	return category.Category{}, category.ErrNotFound
}
