package recordstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

const CourseTable = "course_c"

var courseFields = Fields(
	"Id", "name", "instructor", "color", "schedule", "semester", "targetGrade", "currentGrade", "gradeCategories",
)

type courseRecord struct {
	ID              int             `json:"Id,omitempty"`
	Name            string          `json:"name"`
	Instructor      string          `json:"instructor"`
	Color           string          `json:"color"`
	Schedule        string          `json:"schedule"`
	Semester        string          `json:"semester"`
	TargetGrade     float64         `json:"targetGrade"`
	CurrentGrade    null.Float64    `json:"currentGrade"`
	GradeCategories json.RawMessage `json:"gradeCategories"`
}

func toCourseRecord(c course.Course) (courseRecord, error) {
	cats := c.GradeCategories
	if cats == nil {
		cats = []course.GradeCategory{}
	}
	raw, err := json.Marshal(cats)
	if err != nil {
		return courseRecord{}, errors.Wrap(err, "encoding grade categories")
	}
	return courseRecord{
		ID:              c.ID,
		Name:            c.Name,
		Instructor:      c.Instructor,
		Color:           c.Color,
		Schedule:        c.Schedule,
		Semester:        c.Semester,
		TargetGrade:     c.TargetGrade,
		CurrentGrade:    c.CurrentGrade,
		GradeCategories: raw,
	}, nil
}

// course decodes the record. Grade categories are accepted as a JSON array or as a string holding one.
func (r courseRecord) course() (course.Course, error) {
	c := course.Course{
		ID:              r.ID,
		Name:            r.Name,
		Instructor:      r.Instructor,
		Color:           r.Color,
		Schedule:        r.Schedule,
		Semester:        r.Semester,
		TargetGrade:     r.TargetGrade,
		CurrentGrade:    r.CurrentGrade,
		GradeCategories: []course.GradeCategory{},
	}
	raw := r.GradeCategories
	if strings.HasPrefix(strings.TrimSpace(string(raw)), `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return course.Course{}, err
		}
		raw = json.RawMessage(s)
	}
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &c.GradeCategories); err != nil {
			return course.Course{}, err
		}
		if c.GradeCategories == nil {
			c.GradeCategories = []course.GradeCategory{}
		}
	}
	return c, nil
}

func decodeCourse(op string, r courseRecord) (course.Course, error) {
	c, err := r.course()
	if err != nil {
		return course.Course{}, core.NewRemoteError(op, errors.Wrap(err, "decoding grade categories"))
	}
	return c, nil
}

type courseRepository struct {
	client *Client
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(client *Client) *courseRepository {
	return &courseRepository{client: client}
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var records []courseRecord
	params := FetchParams{
		Fields:  courseFields,
		OrderBy: []OrderBy{{FieldName: "name", SortType: "ASC"}},
	}
	if err := repo.client.Fetch(ctx, CourseTable, params, &records); err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(records))
	for _, r := range records {
		c, err := decodeCourse("fetchRecords", r)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var r courseRecord
	found, err := repo.client.Get(ctx, CourseTable, id, &r)
	if err != nil {
		return course.Course{}, err
	}
	if !found {
		return course.Course{}, course.ErrNotFound
	}
	return decodeCourse("getRecordById", r)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	c.ID = 0
	rec, err := toCourseRecord(c)
	if err != nil {
		return course.Course{}, err
	}
	var created courseRecord
	if err = repo.client.Create(ctx, CourseTable, rec, &created); err != nil {
		return course.Course{}, err
	}
	return decodeCourse("createRecord", created)
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	rec, err := toCourseRecord(c)
	if err != nil {
		return course.Course{}, err
	}
	var updated courseRecord
	if err = repo.client.Update(ctx, CourseTable, rec, &updated); err != nil {
		return course.Course{}, err
	}
	return decodeCourse("updateRecord", updated)
}

// DeleteCourse checks the course exists first: the remote store does not report missing records apart.
func (repo *courseRepository) DeleteCourse(ctx context.Context, id int) (bool, error) {
	if _, err := repo.GetCourseByID(ctx, id); err != nil {
		return false, err
	}
	if err := repo.client.Delete(ctx, CourseTable, id); err != nil {
		return false, err
	}
	return true, nil
}
