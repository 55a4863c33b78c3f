package dummydb

import (
	"context"
	"sort"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

type courseRepository struct {
	db    *DB
	table *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db, table: db.course}
}

// copyCourse detaches the stored course from the returned one: categories & grades are copied.
func copyCourse(c course.Course) course.Course {
	cats := make([]course.GradeCategory, len(c.GradeCategories))
	for i, gc := range c.GradeCategories {
		grades := make([]float64, len(gc.Grades))
		copy(grades, gc.Grades)
		gc.Grades = grades
		cats[i] = gc
	}
	c.GradeCategories = cats
	return c
}

func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.table.table))
	for _, c := range repo.table.table {
		courses = append(courses, copyCourse(*c))
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Name == courses[j].Name {
			return courses[i].ID < courses[j].ID
		}
		return courses[i].Name < courses[j].Name
	})
	return courses
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.table.RLock()
	defer repo.table.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	if err := repo.db.wait(ctx); err != nil {
		return course.Course{}, err
	}
	repo.table.RLock()
	defer repo.table.RUnlock()

	if c, ok := repo.table.table[id]; ok {
		return copyCourse(*c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	if err := repo.db.wait(ctx); err != nil {
		return course.Course{}, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	repo.table.pk++
	c = copyCourse(c)
	c.ID = repo.table.pk
	repo.table.table[c.ID] = &c
	return copyCourse(c), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	if err := repo.db.wait(ctx); err != nil {
		return course.Course{}, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	if _, ok := repo.table.table[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	c = copyCourse(c)
	repo.table.table[c.ID] = &c
	return copyCourse(c), nil
}

// DeleteCourse leaves the course's assignments in place.
func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	if err := repo.db.wait(ctx); err != nil {
		return false, err
	}
	repo.table.Lock()
	defer repo.table.Unlock()

	if _, ok := repo.table.table[id]; !ok {
		return false, course.ErrNotFound
	}
	delete(repo.table.table, id)
	return true, nil
}
