package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/report"
)

var (
	contextObjectKey     = "object"
	errCourseNotFoundCtx = errors.New("course object not found in echo.Context")
)

type courseApi struct {
	svc           *course.Service
	assignmentSvc *assignment.Service
	reportSvc     *report.Service
	validate      *validator.Validate
}

func registerCourseAPI(g *echo.Group, deps *Deps) {
	api := courseApi{
		svc:           deps.CourseSvc,
		assignmentSvc: deps.AssignmentSvc,
		reportSvc:     deps.ReportSvc,
		validate:      deps.Validate,
	}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/summary", api.summary)

	// detail endpoints
	dg := cg.Group("/:id", courseMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/grades", api.recordGrade)
	dg.GET("/assignments", api.queryAssignments)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}
	filter.Clean()

	courses, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) summary(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []report.CourseSummary{})
	}
	filter.Clean()

	summaries, err := api.reportSvc.Courses(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "summarizing courses")
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, ok := ctx.Get(contextObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	c, ok := ctx.Get(contextObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundCtx, "retrieving object from context")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), c.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	c, ok := ctx.Get(contextObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundCtx, "retrieving object from context")
	}

	deleted, err := api.svc.Delete(ctx.Request().Context(), c.ID)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) recordGrade(ctx echo.Context) error {
	c, ok := ctx.Get(contextObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundCtx, "retrieving object from context")
	}

	var data course.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.RecordGrade(ctx.Request().Context(), c.ID, data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) queryAssignments(ctx echo.Context) error {
	c, ok := ctx.Get(contextObjectKey).(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundCtx, "retrieving object from context")
	}
	ordering := new(Ordering)
	if err := ordering.Bind(ctx); err != nil {
		return err
	}

	list, err := api.assignmentSvc.Query(
		ctx.Request().Context(),
		assignment.QueryFilter{CourseID: c.ID},
		ordering.Ordering,
		map[int]string{c.ID: c.Name},
	)
	if err != nil {
		return errors.Wrap(err, "querying course assignments")
	}
	return ctx.JSON(http.StatusOK, list)
}

// courseMiddleware loads the ":id" course into the context.
func courseMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := paramID(ctx)
			if err != nil {
				return err
			}
			c, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if core.IsNotFound(err) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by ID")
			}
			ctx.Set(contextObjectKey, c)
			return next(ctx)
		}
	}
}
