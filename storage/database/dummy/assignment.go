package dummydb

import (
	"context"
	"sort"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

type assignmentRepository struct {
	db    *DB
	table *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{db: db, table: db.assignment}
}

// query returns the assignments accepted by `keep`, by due date ASC.
func (repo *assignmentRepository) query(keep func(a *assignment.Assignment) bool) []assignment.Assignment {
	list := make([]assignment.Assignment, 0, len(repo.table.table))
	for _, a := range repo.table.table {
		if keep == nil || keep(a) {
			list = append(list, *a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].DueDate.Before(list[j].DueDate)
	})
	return list
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.table.RLock()
	defer repo.table.RUnlock()
	return repo.query(nil), nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.table.RLock()
	defer repo.table.RUnlock()
	return repo.query(func(a *assignment.Assignment) bool { return a.CourseID == courseID }), nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	if err := repo.db.wait(ctx); err != nil {
		return assignment.Assignment{}, err
	}
	repo.table.RLock()
	defer repo.table.RUnlock()

	if a, ok := repo.table.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if err := repo.db.wait(ctx); err != nil {
		return assignment.Assignment{}, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	repo.table.pk++
	a.ID = repo.table.pk
	repo.table.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if err := repo.db.wait(ctx); err != nil {
		return assignment.Assignment{}, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	if _, ok := repo.table.table[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	repo.table.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	if err := repo.db.wait(ctx); err != nil {
		return false, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	if _, ok := repo.table.table[id]; !ok {
		return false, assignment.ErrNotFound
	}
	delete(repo.table.table, id)
	return true, nil
}
