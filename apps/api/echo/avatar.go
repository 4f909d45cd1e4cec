package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/avatar"
)

type avatarApi struct {
	service  string
	validate *validator.Validate
}

func registerAvatarAPI(g *echo.Group, conf *core.Config, validate *validator.Validate) {
	api := avatarApi{service: conf.AvatarService, validate: validate}
	g.GET("/avatar", api.render)
}

// render shows the mood badge only when a mood is given and leaves presence out unless `online` is set.
func (api *avatarApi) render(ctx echo.Context) error {
	var (
		query  AvatarQuery
		online bool
	)
	err := echo.QueryParamsBinder(ctx).
		String("name", &query.Name).
		String("image_url", &query.ImageURL).
		String("mood", &query.Mood).
		String("size", &query.Size).
		Bool("online", &online).
		BindError()
	if err != nil {
		return badRequestBody(err)
	}
	if ctx.QueryParam("online") != "" {
		query.Online = &online
	}
	if err = api.validate.Struct(&query); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, avatar.Render(api.service, query.Options()))
}

type AvatarQuery struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Mood     string `json:"mood"`
	Size     string `json:"size" validate:"omitempty,oneof=sm md lg xl"`
	Online   *bool  `json:"online"`
}

func (q AvatarQuery) Options() avatar.Options {
	opts := avatar.Options{
		Name:     q.Name,
		ImageURL: q.ImageURL,
		Online:   q.Online,
		Size:     avatar.Size(q.Size),
	}
	if q.Mood != "" {
		opts.Mood = avatar.Mood(q.Mood)
		opts.ShowMoodBadge = true
	}
	return opts
}
