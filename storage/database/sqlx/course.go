package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

const (
	courseSelect = `SELECT "id", "name", "instructor", "color", "schedule", "semester", "target_grade",
       "current_grade", "grade_categories" FROM "courses"`
	courseInsert = `INSERT INTO "courses" ("name", "instructor", "color", "schedule", "semester", "target_grade",
       "current_grade", "grade_categories")
VALUES (:name, :instructor, :color, :schedule, :semester, :target_grade, :current_grade, :grade_categories)
RETURNING "id"`
	courseUpdate = `UPDATE "courses"
SET "name" = :name, "instructor" = :instructor, "color" = :color, "schedule" = :schedule,
    "semester" = :semester, "target_grade" = :target_grade, "current_grade" = :current_grade,
    "grade_categories" = :grade_categories
WHERE "id" = :id`
)

type courseRow struct {
	ID              int            `db:"id"`
	Name            string         `db:"name"`
	Instructor      string         `db:"instructor"`
	Color           string         `db:"color"`
	Schedule        string         `db:"schedule"`
	Semester        string         `db:"semester"`
	TargetGrade     float64        `db:"target_grade"`
	CurrentGrade    null.Float64   `db:"current_grade"`
	GradeCategories types.JSONText `db:"grade_categories"`
}

func toCourseRow(c course.Course) (courseRow, error) {
	cats := c.GradeCategories
	if cats == nil {
		cats = []course.GradeCategory{}
	}
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
	var err error
	if row.GradeCategories, err = jsonText(cats); err != nil {
		return courseRow{}, errors.Wrap(err, "marshalling grade categories")
	}
	return row, nil
}

func (row courseRow) course() (course.Course, error) {
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

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, courseSelect+` ORDER BY "name" ASC, "id" ASC`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		c, err := row.course()
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(courseSelect+` WHERE "id" = ?`), id); err != nil {
		if isNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course by ID")
	}
	return row.course()
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := toCourseRow(c)
	if err != nil {
		return course.Course{}, err
	}
	q, args, err := repo.db.BindNamed(courseInsert, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "binding course")
	}
	if err = repo.db.QueryRowxContext(ctx, q, args...).Scan(&row.ID); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.course()
}

func (repo courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row, err := toCourseRow(c)
	if err != nil {
		return course.Course{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, courseUpdate, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if cnt, err := res.RowsAffected(); err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	} else if cnt == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return row.course()
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	ok, err := deleteByID(ctx, repo.db, "courses", id)
	if err != nil {
		return false, errors.Wrap(err, "deleting course")
	}
	if !ok {
		return false, course.ErrNotFound
	}
	return true, nil
}
