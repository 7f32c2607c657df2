package category

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrNameExists = errors.New("a category with this name already exists")
)

// defaultOrdering lists categories alphabetically.
var defaultOrdering = []core.DBOrdering{{Field: "name", Ascending: true}}

type (
	Repository interface {
		CreateCategory(ctx context.Context, cat Category) (Category, error)
		QueryCategories(ctx context.Context, ordering []core.DBOrdering) ([]Category, error)
		GetCategoryByID(ctx context.Context, id string) (Category, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewCategory) (Category, error)
		Query(ctx context.Context) ([]Category, error)
		GetByID(ctx context.Context, id string) (Category, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCategory) (Category, error) {
	icon, err := ParseIcon(nc.Icon)
	if err != nil {
		return Category{}, core.NewValidationError(err, core.FieldError{Field: "icon", Error: err.Error()})
	}
	cat := Category{
		Name:        nc.Name,
		Description: nc.Description,
		Icon:        icon,
		Color:       nc.Color,
	}
	return svc.repo.CreateCategory(ctx, cat)
}

func (svc *Service) Query(ctx context.Context) ([]Category, error) {
	return svc.repo.QueryCategories(ctx, defaultOrdering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Category, error) {
	return svc.repo.GetCategoryByID(ctx, id)
}
