package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/video"
)

type videoApi struct {
	host     string
	players  *video.Registry
	validate *validator.Validate
}

func registerVideoAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, players *video.Registry, validate *validator.Validate) {
	api := videoApi{
		host:     conf.VideoHost,
		players:  players,
		validate: validate,
	}

	// the catalog is public
	vg := g.Group("/videos")
	vg.GET("", api.list)
	vg.GET("/featured", api.featured)
	vg.GET("/categories", api.categories)
	vg.GET("/:id", api.retrieve)

	pg := g.Group("/players", jwt)
	pg.POST("", api.openPlayer)
	pg.GET("/now-playing", api.nowPlaying)
	pg.POST("/:id/play", api.play)
	pg.POST("/:id/close", api.closePlayer)
}

// list filters the catalog by the `category` query param (exact match, All by default).
func (api *videoApi) list(ctx echo.Context) error {
	category := video.All
	if c := ctx.QueryParam("category"); c != "" {
		category = video.Category(c)
	}
	return ctx.JSON(http.StatusOK, video.Filter(category))
}

func (api *videoApi) featured(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, video.Featured())
}

func (api *videoApi) categories(ctx echo.Context) error {
	out := make([]CategoryView, 0, len(video.Categories))
	for _, c := range video.Categories {
		out = append(out, CategoryView{Name: c, Style: video.StyleOf(c)})
	}
	return ctx.JSON(http.StatusOK, out)
}

func (api *videoApi) retrieve(ctx echo.Context) error {
	v, err := video.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *videoApi) openPlayer(ctx echo.Context) error {
	var data OpenPlayerRequest
	if err := ctx.Bind(&data); err != nil {
		return badRequestBody(err)
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	owner := session.FromContext(ctx.Request().Context())
	p, err := api.players.Open(owner.UserID, data.VideoID, data.Modal, data.Autoplay)
	if err != nil {
		return errors.Wrap(err, "opening player")
	}
	return ctx.JSON(http.StatusCreated, p.View(api.host))
}

func (api *videoApi) play(ctx echo.Context) error {
	owner := session.FromContext(ctx.Request().Context())
	p, err := api.players.Play(owner.UserID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "playing video")
	}
	return ctx.JSON(http.StatusOK, p.View(api.host))
}

func (api *videoApi) closePlayer(ctx echo.Context) error {
	owner := session.FromContext(ctx.Request().Context())
	p, err := api.players.Close(owner.UserID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "closing player")
	}
	return ctx.JSON(http.StatusOK, p.View(api.host))
}

func (api *videoApi) nowPlaying(ctx echo.Context) error {
	owner := session.FromContext(ctx.Request().Context())
	v, ok := api.players.NowPlaying(owner.UserID)
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, v)
}

type (
	CategoryView struct {
		Name  video.Category `json:"name"`
		Style video.Style    `json:"style"`
	}

	OpenPlayerRequest struct {
		VideoID  string `json:"video_id" validate:"required"`
		Modal    bool   `json:"modal"`
		Autoplay bool   `json:"autoplay"`
	}
)
