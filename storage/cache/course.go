package cache

import (
	"context"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

var coursesKey = key("courses", "all")

type courseRepository struct {
	next  course.Repository
	cache *Cache
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

// NewCourseRepository caches the course list & single courses read from `next`.
func NewCourseRepository(next course.Repository, cache *Cache) *courseRepository {
	return &courseRepository{next: next, cache: cache}
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	if repo.cache.get(ctx, coursesKey, &courses) {
		return courses, nil
	}
	courses, err := repo.next.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	repo.cache.set(ctx, coursesKey, courses)
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var c course.Course
	k := idKey("course", id)
	if repo.cache.get(ctx, k, &c) {
		return c, nil
	}
	c, err := repo.next.GetCourseByID(ctx, id)
	if err != nil {
		return course.Course{}, err
	}
	repo.cache.set(ctx, k, c)
	return c, nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	c, err := repo.next.CreateCourse(ctx, c)
	if err != nil {
		return course.Course{}, err
	}
	repo.cache.del(ctx, coursesKey)
	return c, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	defer repo.cache.del(ctx, coursesKey, idKey("course", c.ID))
	return repo.next.UpdateCourse(ctx, c)
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	defer repo.cache.del(ctx, coursesKey, idKey("course", id))
	return repo.next.DeleteCourse(ctx, id)
}
