package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

type videoApi struct {
	deps ServerDeps
	svc  video.ServiceInterface
}

func registerVideoAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := videoApi{
		deps: deps,
		svc:  deps.VideoSvc,
	}

	// public gallery: published videos only
	vg := g.Group("/videos")
	vg.GET("", api.queryPublished)
	vg.GET("/:id", api.retrievePublished)

	// admin panel endpoints
	ag := g.Group("/admin/videos", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.POST("", api.submit)
	ag.POST("/:id/toggle-published", api.togglePublished)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *videoApi) queryPublished(ctx echo.Context) error {
	filter := new(video.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []video.Video{})
	}
	filter.Clean()
	published := true
	filter.IsPublished = &published

	videos, err := api.svc.Query(ctx.Request().Context(), filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying videos")
	}
	if videos == nil {
		videos = []video.Video{}
	}
	return ctx.JSON(http.StatusOK, videos)
}

func (api *videoApi) retrievePublished(ctx echo.Context) error {
	vid, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding video by ID")
	}
	if !vid.IsPublished {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, vid)
}

func (api *videoApi) query(ctx echo.Context) error {
	filter := new(video.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []video.Video{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	videos, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying videos")
	}
	if videos == nil {
		videos = []video.Video{}
	}
	return ctx.JSON(http.StatusOK, videos)
}

// submit accepts a multipart form: `title`, `description`, a `video_file`
// part and an optional `thumbnail_file` part.
func (api *videoApi) submit(ctx echo.Context) error {
	data := video.NewVideo{
		Title:       ctx.FormValue("title"),
		Description: ctx.FormValue("description"),
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	videoFile, cleanupVideo, err := formUpload(ctx, "video_file")
	if err != nil {
		return err
	}
	if cleanupVideo != nil {
		defer cleanupVideo()
	}

	thumbFile, cleanupThumb, err := formUpload(ctx, "thumbnail_file")
	if err != nil {
		return err
	}
	if cleanupThumb != nil {
		defer cleanupThumb()
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	vid, err := api.svc.Submit(ctx.Request().Context(), data, videoFile, thumbFile, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "submitting video")
	}
	return ctx.JSON(http.StatusCreated, vid)
}

// formUpload opens the named multipart file if present. A missing part is
// not an error here; the service decides whether the file is required.
func formUpload(ctx echo.Context, name string) (*video.Upload, func(), error) {
	fh, err := ctx.FormFile(name)
	if err != nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s part", name)
	}
	return &video.Upload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}

func (api *videoApi) togglePublished(ctx echo.Context) error {
	vid, err := api.svc.TogglePublished(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "toggling video published state")
	}
	return ctx.JSON(http.StatusOK, vid)
}

func (api *videoApi) destroy(ctx echo.Context) error {
	if !confirmed(ctx) {
		return core.NewConfirmationRequiredError("delete this video")
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting video")
	}
	return ctx.NoContent(http.StatusNoContent)
}
