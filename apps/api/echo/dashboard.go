package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/dashboard"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/mood"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}

	dg := g.Group("/dashboard", jwt)
	dg.GET("", api.load)
	dg.POST("/actions", api.dispatch)
	dg.PUT("/mood", api.selectMood)
}

func (api *dashboardApi) load(ctx echo.Context) error {
	snap, err := api.svc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *dashboardApi) dispatch(ctx echo.Context) error {
	var data ActionRequest
	if err := ctx.Bind(&data); err != nil {
		return badRequestBody(err)
	}
	e, err := dashboard.ParseEvent(data.Action)
	if err != nil {
		return err
	}

	snap, err := api.svc.Dispatch(ctx.Request().Context(), e)
	if err != nil {
		return errors.Wrapf(err, "dispatching %q", e)
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *dashboardApi) selectMood(ctx echo.Context) error {
	var data MoodRequest
	if err := ctx.Bind(&data); err != nil {
		return badRequestBody(err)
	}

	snap, err := api.svc.SelectMood(ctx.Request().Context(), data.Rating)
	if err != nil {
		return errors.Wrap(err, "selecting mood")
	}
	return ctx.JSON(http.StatusOK, snap)
}

type (
	ActionRequest struct {
		Action string `json:"action"`
	}

	MoodRequest struct {
		Rating mood.Rating `json:"rating"`
	}
)
