package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core/report"
)

type reportApi struct {
	svc *report.Service
	now func() time.Time
}

func registerReportAPI(g *echo.Group, deps *Deps) {
	api := reportApi{svc: deps.ReportSvc, now: deps.Now}

	g.GET("/dashboard", api.dashboard)
	g.GET("/upcoming", api.upcoming)
	g.GET("/grades", api.grades)
	g.GET("/calendar", api.calendar)
}

// Handlers

func (api *reportApi) dashboard(ctx echo.Context) error {
	dash, err := api.svc.Dashboard(ctx.Request().Context(), api.now())
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *reportApi) upcoming(ctx echo.Context) error {
	items, err := api.svc.Upcoming(ctx.Request().Context(), api.now())
	if err != nil {
		return errors.Wrap(err, "listing upcoming assignments")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *reportApi) grades(ctx echo.Context) error {
	rep, err := api.svc.Grades(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building grades report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportApi) calendar(ctx echo.Context) error {
	now := api.now()
	month := new(Month)
	if err := month.Bind(ctx, now); err != nil {
		return err
	}

	cal, err := api.svc.Calendar(ctx.Request().Context(), month.Year, month.Month, now)
	if err != nil {
		return errors.Wrap(err, "building calendar")
	}
	return ctx.JSON(http.StatusOK, cal)
}
