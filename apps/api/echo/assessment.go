package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/dashboard"
)

type assessmentApi struct {
	svc       *assessment.Service
	dashboard *dashboard.Service
	validate  *validator.Validate
}

func registerAssessmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *assessment.Service,
	dashboardSvc *dashboard.Service,
	validate *validator.Validate,
) {
	api := assessmentApi{
		svc:       svc,
		dashboard: dashboardSvc,
		validate:  validate,
	}

	ag := g.Group("/assessments", jwt)
	ag.GET("", api.recent)
	ag.POST("", api.submit)
}

func (api *assessmentApi) recent(ctx echo.Context) error {
	scores, err := api.svc.Recent(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying recent scores")
	}
	if scores == nil {
		scores = []assessment.Score{}
	}
	return ctx.JSON(http.StatusOK, scores)
}

// submit stores a questionnaire and closes it on the dashboard.
func (api *assessmentApi) submit(ctx echo.Context) error {
	var data assessment.NewResponse
	if err := ctx.Bind(&data); err != nil {
		return badRequestBody(err)
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	resp, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting questionnaire")
	}
	snap, err := api.dashboard.AssessmentCompleted(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "completing assessment")
	}
	return ctx.JSON(http.StatusCreated, SubmitResponse{Response: resp, Dashboard: snap})
}

type SubmitResponse struct {
	Response  assessment.Response `json:"response"`
	Dashboard dashboard.Snapshot  `json:"dashboard"`
}
