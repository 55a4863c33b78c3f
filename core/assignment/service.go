package assignment

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("assignment")
)

type (
	// Repository is an assignment Record Store.
	Repository interface {
		// QueryAllAssignments returns all assignments ordered by due date ASC.
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		// QueryAssignmentsByCourse returns the assignments of a course ordered by due date ASC.
		QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		// CreateAssignment stores `a` under an ID assigned by the store.
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		// UpdateAssignment replaces the stored assignment having a.ID.
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) (bool, error)
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

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourse(ctx, courseID)
}

// Query filters then sorts all assignments. `courseNames` is only needed when ordering by course.
func (svc *Service) Query(
	ctx context.Context,
	filter QueryFilter,
	ord Ordering,
	courseNames map[int]string,
) ([]Assignment, error) {
	var (
		list []Assignment
		err  error
	)
	if filter.CourseID != 0 {
		list, err = svc.repo.QueryAssignmentsByCourse(ctx, filter.CourseID)
	} else {
		list, err = svc.repo.QueryAllAssignments(ctx)
	}
	if err != nil {
		return nil, err
	}
	if !filter.IsEmpty() {
		list = Filter(list, filter)
	}
	return Sort(list, ord, courseNames), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	return svc.repo.CreateAssignment(ctx, na.Assignment())
}

// Update merges the set fields of `ua` into the stored assignment.
func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "finding assignment")
	}
	return svc.repo.UpdateAssignment(ctx, ua.Apply(a))
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.repo.DeleteAssignment(ctx, id)
}

// ToggleStatus flips the assignment between pending and completed.
func (svc *Service) ToggleStatus(ctx context.Context, id int) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "finding assignment")
	}
	a.Status = a.Status.Toggle()
	return svc.repo.UpdateAssignment(ctx, a)
}
