package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core/course"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

// Stats summarizes the catalog for the admin dashboard cards.
type Stats struct {
	Courses          int `json:"courses"`
	PublishedCourses int `json:"published_courses"`
	Categories       int `json:"categories"`
	Videos           int `json:"videos"`
	Users            int `json:"users"`
}

type statsApi struct {
	deps ServerDeps
}

func registerAdminStatsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := statsApi{deps: deps}
	g.GET("/admin/stats", api.retrieve, jwt, adminMiddleware())
}

func (api *statsApi) retrieve(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	courses, err := api.deps.CourseSvc.Query(rctx, nil, nil)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	published := true
	publishedCourses, err := api.deps.CourseSvc.Query(rctx, &course.QueryFilter{IsPublished: &published}, nil)
	if err != nil {
		return errors.Wrap(err, "querying published courses")
	}
	cats, err := api.deps.CategorySvc.Query(rctx)
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	videos, err := api.deps.VideoSvc.Query(rctx, &video.QueryFilter{}, nil)
	if err != nil {
		return errors.Wrap(err, "querying videos")
	}
	users, err := api.deps.UserSvc.Query(rctx, nil, nil)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	return ctx.JSON(http.StatusOK, Stats{
		Courses:          len(courses),
		PublishedCourses: len(publishedCourses),
		Categories:       len(cats),
		Videos:           len(videos),
		Users:            len(users),
	})
}
