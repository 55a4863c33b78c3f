package course

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("course")
	ErrUnknownCategory = errors.New("unknown grade category")
)

type (
	// Repository is a course Record Store.
	Repository interface {
		// QueryAllCourses returns all courses ordered by name ASC.
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		// CreateCourse stores `c` under an ID assigned by the store.
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// UpdateCourse replaces the stored course having c.ID.
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

// NewService panics when repo is nil. Repositories must be pointer types: the nil check rejects
// struct values.
func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return courses, nil
	}
	return Filter(courses, filter), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, nc.Course())
}

// Update merges the set fields of `uc` into the stored course.
func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, errors.Wrap(err, "finding course")
	}
	return svc.repo.UpdateCourse(ctx, uc.Apply(c))
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.repo.DeleteCourse(ctx, id)
}

// RecordGrade appends a grade entry to one of the course's categories, the current grade follows.
func (svc *Service) RecordGrade(ctx context.Context, id int, ng NewGrade) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, errors.Wrap(err, "finding course")
	}
	idx, ok := c.Category(ng.Category)
	if !ok {
		return Course{}, core.NewValidationError(
			ErrUnknownCategory,
			core.FieldError{Field: "category", Error: ErrUnknownCategory.Error()},
		)
	}

	cats := make([]GradeCategory, len(c.GradeCategories))
	copy(cats, c.GradeCategories)
	grades := make([]float64, 0, len(cats[idx].Grades)+1)
	cats[idx].Grades = append(append(grades, cats[idx].Grades...), ng.Grade)

	return svc.repo.UpdateCourse(ctx, UpdateCourse{GradeCategories: &cats}.Apply(c))
}
