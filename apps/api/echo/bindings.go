package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

var (
	orderingParam = "ordering"
	yearParam     = "year"
	monthParam    = "month"
)

type Ordering struct {
	assignment.Ordering
}

// Bind reads "?ordering=[-]field", defaulting to assignment.DefaultOrdering.
func (ord *Ordering) Bind(ctx echo.Context) error {
	ord.Ordering = assignment.DefaultOrdering

	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return nil
	}
	parsed, ok := assignment.ParseOrdering(val)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: orderingParam, Error: "unknown field " + val})
	}
	ord.Ordering = parsed
	return nil
}

type Month struct {
	Year  int
	Month time.Month
}

// Bind reads "?year=&month=", each defaulting to the one of `now`.
func (m *Month) Bind(ctx echo.Context, now time.Time) error {
	m.Year, m.Month = now.Year(), now.Month()

	if val := ctx.QueryParam(yearParam); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil || year < 1 || year > 9999 {
			return core.NewValidationError(nil, core.FieldError{Field: yearParam, Error: "invalid year"})
		}
		m.Year = year
	}
	if val := ctx.QueryParam(monthParam); val != "" {
		month, err := strconv.Atoi(val)
		if err != nil || month < 1 || month > 12 {
			return core.NewValidationError(nil, core.FieldError{Field: monthParam, Error: "month must be between 1 and 12"})
		}
		m.Month = time.Month(month)
	}
	return nil
}

// paramID reads the ":id" path param; any non positive integer is not found.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHttpNotFound
	}
	return id, nil
}
