package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/dashboard"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
)

type journalApi struct {
	svc       *journal.Service
	dashboard *dashboard.Service
}

func registerJournalAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *journal.Service, dashboardSvc *dashboard.Service) {
	api := journalApi{svc: svc, dashboard: dashboardSvc}

	jg := g.Group("/journal", jwt)
	jg.GET("", api.list)
	jg.POST("", api.save)
}

func (api *journalApi) list(ctx echo.Context) error {
	limit := new(Limit)
	limit.Bind(ctx, journal.DefaultListLimit, journal.MaxListLimit)

	entries, err := api.svc.List(ctx.Request().Context(), limit.N)
	if err != nil {
		return errors.Wrap(err, "listing journal entries")
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

// save never fails on a store error: the outcome is reported as a notification.
func (api *journalApi) save(ctx echo.Context) error {
	var data journal.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return badRequestBody(err)
	}

	res, err := api.dashboard.SaveJournal(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving journal entry")
	}
	code := http.StatusOK
	if res.Saved {
		code = http.StatusCreated
	}
	return ctx.JSON(code, res)
}
