package boiledrepos

import (
	"context"
	"database/sql"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/sqlboiler/v4/types"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

// courseRow is a row of the "courses" table.
type courseRow struct {
	ID              int          `boil:"id"`
	Name            string       `boil:"name"`
	Instructor      string       `boil:"instructor"`
	Color           string       `boil:"color"`
	Schedule        string       `boil:"schedule"`
	Semester        string       `boil:"semester"`
	TargetGrade     float64      `boil:"target_grade"`
	CurrentGrade    null.Float64 `boil:"current_grade"`
	GradeCategories types.JSON   `boil:"grade_categories"`
}

// courseColumns are the writable columns, in courseRow.values order.
var courseColumns = []string{
	"name", "instructor", "color", "schedule", "semester", "target_grade", "current_grade", "grade_categories",
}

func (r courseRow) values() []interface{} {
	return []interface{}{
		r.Name, r.Instructor, r.Color, r.Schedule, r.Semester, r.TargetGrade, r.CurrentGrade, r.GradeCategories,
	}
}

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) boil(c course.Course) (courseRow, error) {
	row := courseRow{
		ID:           c.ID,
		Name:         c.Name,
		Instructor:   c.Instructor,
		Color:        c.Color,
		Schedule:     c.Schedule,
		Semester:     c.Semester,
		TargetGrade:  c.TargetGrade,
		CurrentGrade: c.CurrentGrade,
	}
	cats := c.GradeCategories
	if cats == nil {
		cats = []course.GradeCategory{}
	}
	if err := row.GradeCategories.Marshal(cats); err != nil {
		return courseRow{}, errors.Wrap(err, "marshalling grade categories")
	}
	return row, nil
}

func (repo courseRepository) unboil(row courseRow) (course.Course, error) {
	c := course.Course{
		ID:              row.ID,
		Name:            row.Name,
		Instructor:      row.Instructor,
		Color:           row.Color,
		Schedule:        row.Schedule,
		Semester:        row.Semester,
		TargetGrade:     row.TargetGrade,
		CurrentGrade:    row.CurrentGrade,
		GradeCategories: []course.GradeCategory{},
	}
	if len(row.GradeCategories) > 0 {
		if err := row.GradeCategories.Unmarshal(&c.GradeCategories); err != nil {
			return course.Course{}, errors.Wrap(err, "unmarshalling grade categories")
		}
	}
	return c, nil
}

// trapNoRowsErr maps psql "no rows" err to course.ErrNotFound
func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	q := NewQuery(
		qm.From(quote(TableNames.Course)),
		orderBy(core.DBOrdering{Field: "name", Ascending: true}, core.DBOrdering{Field: "id", Ascending: true}),
	)
	if err := q.Bind(ctx, repo.exec, &rows); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		c, err := repo.unboil(row)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	q := NewQuery(qm.From(quote(TableNames.Course)), qm.Where(quote("id")+"=?", id))
	if err := q.Bind(ctx, repo.exec, &row); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course by ID")
	}
	return repo.unboil(row)
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := repo.boil(c)
	if err != nil {
		return course.Course{}, err
	}
	var inserted courseRow
	q := queries.Raw(insertQuery(TableNames.Course, courseColumns), row.values()...)
	if err = q.Bind(ctx, repo.exec, &inserted); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return repo.unboil(inserted)
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := repo.boil(c)
	if err != nil {
		return course.Course{}, err
	}
	var updated courseRow
	q := queries.Raw(updateQuery(TableNames.Course, courseColumns), append(row.values(), row.ID)...)
	if err = q.Bind(ctx, repo.exec, &updated); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "updating course")
	}
	return repo.unboil(updated)
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	res, err := queries.Raw(deleteQuery(TableNames.Course), id).ExecContext(ctx, repo.exec)
	if err != nil {
		return false, errors.Wrap(err, "deleting course")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "deleting course")
	}
	if cnt == 0 {
		return false, course.ErrNotFound
	}
	return true, nil
}
