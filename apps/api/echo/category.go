package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
)

type categoryApi struct {
	deps ServerDeps
	svc  category.ServiceInterface
}

func registerCategoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := categoryApi{
		deps: deps,
		svc:  deps.CategorySvc,
	}

	cg := g.Group("/categories")
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.GET("/icons", api.queryIcons)

	ag := g.Group("/admin/categories", jwt, adminMiddleware())
	ag.POST("", api.create)
}

// Handlers

func (api *categoryApi) query(ctx echo.Context) error {
	cats, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	if cats == nil {
		cats = []category.Category{}
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *categoryApi) retrieve(ctx echo.Context) error {
	cat, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == category.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding category by ID")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *categoryApi) queryIcons(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, category.AllIcons)
}

func (api *categoryApi) create(ctx echo.Context) error {
	var data category.NewCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCategory")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	cat, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == category.ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return errors.Wrap(err, "creating category")
	}
	return ctx.JSON(http.StatusCreated, cat)
}
