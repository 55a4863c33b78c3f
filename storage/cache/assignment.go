package cache

import (
	"context"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

var assignmentsKey = key("assignments", "all")

type assignmentRepository struct {
	next  assignment.Repository
	cache *Cache
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

// NewAssignmentRepository caches the assignment list & single assignments read from `next`.
// Per-course lists are not cached.
func NewAssignmentRepository(next assignment.Repository, cache *Cache) *assignmentRepository {
	return &assignmentRepository{next: next, cache: cache}
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var list []assignment.Assignment
	if repo.cache.get(ctx, assignmentsKey, &list) {
		return list, nil
	}
	list, err := repo.next.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	repo.cache.set(ctx, assignmentsKey, list)
	return list, nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.next.QueryAssignmentsByCourse(ctx, courseID)
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var a assignment.Assignment
	k := idKey("assignment", id)
	if repo.cache.get(ctx, k, &a) {
		return a, nil
	}
	a, err := repo.next.GetAssignmentByID(ctx, id)
	if err != nil {
		return assignment.Assignment{}, err
	}
	repo.cache.set(ctx, k, a)
	return a, nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	a, err := repo.next.CreateAssignment(ctx, a)
	if err != nil {
		return assignment.Assignment{}, err
	}
	repo.cache.del(ctx, assignmentsKey)
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	defer repo.cache.del(ctx, assignmentsKey, idKey("assignment", a.ID))
	return repo.next.UpdateAssignment(ctx, a)
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	defer repo.cache.del(ctx, assignmentsKey, idKey("assignment", id))
	return repo.next.DeleteAssignment(ctx, id)
}
