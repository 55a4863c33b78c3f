package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

var errAssignmentNotFoundCtx = errors.New("assignment object not found in echo.Context")

type assignmentApi struct {
	svc       *assignment.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, deps *Deps) {
	api := assignmentApi{
		svc:       deps.AssignmentSvc,
		courseSvc: deps.CourseSvc,
		validate:  deps.Validate,
	}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)

	// detail endpoints
	dg := ag.Group("/:id", assignmentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/toggle", api.toggle)
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	filter := new(assignment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.Assignment{})
	}
	filter.Clean()
	ordering := new(Ordering)
	if err := ordering.Bind(ctx); err != nil {
		return err
	}

	var courseNames map[int]string
	if ordering.Field == assignment.SortByCourse {
		courses, err := api.courseSvc.QueryAll(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "querying courses")
		}
		courseNames = course.Names(courses)
	}

	list, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Ordering, courseNames)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if list == nil {
		list = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, ok := ctx.Get(contextObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAssignmentNotFoundCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	a, ok := ctx.Get(contextObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAssignmentNotFoundCtx, "retrieving object from context")
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Update(ctx.Request().Context(), a.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	a, ok := ctx.Get(contextObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAssignmentNotFoundCtx, "retrieving object from context")
	}

	deleted, err := api.svc.Delete(ctx.Request().Context(), a.ID)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if !deleted {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assignmentApi) toggle(ctx echo.Context) error {
	a, ok := ctx.Get(contextObjectKey).(assignment.Assignment)
	if !ok {
		return errors.Wrap(errAssignmentNotFoundCtx, "retrieving object from context")
	}

	a, err := api.svc.ToggleStatus(ctx.Request().Context(), a.ID)
	if err != nil {
		return errors.Wrap(err, "toggling assignment status")
	}
	return ctx.JSON(http.StatusOK, a)
}

// assignmentMiddleware loads the ":id" assignment into the context.
func assignmentMiddleware(svc *assignment.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := paramID(ctx)
			if err != nil {
				return err
			}
			a, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if core.IsNotFound(err) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding assignment by ID")
			}
			ctx.Set(contextObjectKey, a)
			return next(ctx)
		}
	}
}
