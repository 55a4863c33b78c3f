package boltdb

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

type courseRepository struct {
	db *bbolt.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.db}
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	err := repo.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(coursesBucket).ForEach(func(_, v []byte) error {
			var c course.Course
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			courses = append(courses, c)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	// keys are IDs: a stable sort keeps ID ASC among equal names
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var (
		c     course.Course
		found bool
	)
	err := repo.db.View(func(tx *bbolt.Tx) (err error) {
		found, err = get(tx.Bucket(coursesBucket), id, &c)
		return err
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "finding course by ID")
	}
	if !found {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	err := repo.db.Update(func(tx *bbolt.Tx) error {
		_, err := insert(tx.Bucket(coursesBucket), &c.ID, &c)
		return err
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	var found bool
	err := repo.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(coursesBucket)
		if found = b.Get(itob(c.ID)) != nil; !found {
			return nil
		}
		return put(b, c.ID, c)
	})
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if !found {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	var found bool
	err := repo.db.Update(func(tx *bbolt.Tx) (err error) {
		found, err = remove(tx.Bucket(coursesBucket), id)
		return err
	})
	if err != nil {
		return false, errors.Wrap(err, "deleting course")
	}
	if !found {
		return false, course.ErrNotFound
	}
	return true, nil
}
