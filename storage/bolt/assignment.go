package boltdb

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

type assignmentRepository struct {
	db *bbolt.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{db: db.db}
}

func (repo *assignmentRepository) query(keep func(a assignment.Assignment) bool) ([]assignment.Assignment, error) {
	list := make([]assignment.Assignment, 0)
	err := repo.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(assignmentsBucket).ForEach(func(_, v []byte) error {
			var a assignment.Assignment
			if err := json.Unmarshal(v, &a); err != nil {
				return err
			}
			if keep == nil || keep(a) {
				list = append(list, a)
			}
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })
	return list, nil
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	return repo.query(nil)
}

func (repo *assignmentRepository) QueryAssignmentsByCourse(ctx context.Context, courseID int) ([]assignment.Assignment, error) {
	return repo.query(func(a assignment.Assignment) bool { return a.CourseID == courseID })
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var (
		a     assignment.Assignment
		found bool
	)
	err := repo.db.View(func(tx *bbolt.Tx) (err error) {
		found, err = get(tx.Bucket(assignmentsBucket), id, &a)
		return err
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "finding assignment by ID")
	}
	if !found {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	err := repo.db.Update(func(tx *bbolt.Tx) error {
		_, err := insert(tx.Bucket(assignmentsBucket), &a.ID, &a)
		return err
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	var found bool
	err := repo.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(assignmentsBucket)
		if found = b.Get(itob(a.ID)) != nil; !found {
			return nil
		}
		return put(b, a.ID, a)
	})
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if !found {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	var found bool
	err := repo.db.Update(func(tx *bbolt.Tx) (err error) {
		found, err = remove(tx.Bucket(assignmentsBucket), id)
		return err
	})
	if err != nil {
		return false, errors.Wrap(err, "deleting assignment")
	}
	if !found {
		return false, assignment.ErrNotFound
	}
	return true, nil
}
