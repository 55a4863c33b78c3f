package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

// defaults applied on creation
const (
	DefaultTargetGrade  = 90.0
	DefaultCurrentGrade = 0.0
	DefaultColor        = "#8B7FFF"
)

// Palette lists the presentation colors offered for courses.
var Palette = []string{"#8B7FFF", "#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57", "#FF9FF3", "#54A0FF"}

type Course struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Instructor      string          `json:"instructor"`
	Color           string          `json:"color"`
	Schedule        string          `json:"schedule"`
	Semester        string          `json:"semester"`
	TargetGrade     float64         `json:"target_grade"`
	CurrentGrade    null.Float64    `json:"current_grade"` // denormalized copy of Grade()
	GradeCategories []GradeCategory `json:"grade_categories"`
}

// GradeCategory is a named, weighted bucket of grade entries (e.g. "Homework", "Exams").
type GradeCategory struct {
	Name   string    `json:"name" validate:"required"`
	Weight float64   `json:"weight" validate:"percent"`
	Grades []float64 `json:"grades" validate:"dive,percent"`
}

// Average is the arithmetic mean of the category's entries; null when there are none.
func (gc GradeCategory) Average() null.Float64 {
	if len(gc.Grades) == 0 {
		return null.Float64{}
	}
	var sum float64
	for _, g := range gc.Grades {
		sum += g
	}
	return null.Float64From(sum / float64(len(gc.Grades)))
}

// Average combines the averages of the categories holding entries, weighted by their Weight and normalized by
// the sum of those weights; a zero weight sum falls back to the unweighted mean.
// It is null when no category holds an entry.
func (c Course) Average() null.Float64 {
	var (
		weighted, weights, plain float64
		n                        int
	)
	for _, gc := range c.GradeCategories {
		avg := gc.Average()
		if !avg.Valid {
			continue
		}
		weighted += avg.Float64 * gc.Weight
		weights += gc.Weight
		plain += avg.Float64
		n++
	}
	switch {
	case n == 0:
		return null.Float64{}
	case weights > 0:
		return null.Float64From(weighted / weights)
	default:
		return null.Float64From(plain / float64(n))
	}
}

// Grade is the course's current grade, and the only accessor consumers should use:
// the category-weighted Average when any category holds an entry, the stored CurrentGrade otherwise.
func (c Course) Grade() null.Float64 {
	if avg := c.Average(); avg.Valid {
		return avg
	}
	return c.CurrentGrade
}

// syncGrade stores Grade() into CurrentGrade.
func (c *Course) syncGrade() {
	c.CurrentGrade = c.Grade()
}

func (c Course) Category(name string) (int, bool) {
	for i, gc := range c.GradeCategories {
		if gc.Name == name {
			return i, true
		}
	}
	return -1, false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name            string          `json:"name" validate:"required"`
	Instructor      string          `json:"instructor"`
	Color           string          `json:"color" validate:"omitempty,hexcolor"`
	Schedule        string          `json:"schedule"`
	Semester        string          `json:"semester"`
	TargetGrade     *float64        `json:"target_grade" validate:"omitempty,percent"`
	CurrentGrade    *float64        `json:"current_grade" validate:"omitempty,percent"`
	GradeCategories []GradeCategory `json:"grade_categories" validate:"omitempty,weights,catnames,dive"`
}

func (nc *NewCourse) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Instructor = core.CleanString(nc.Instructor)
	nc.Color = core.CleanString(nc.Color)
	nc.Schedule = core.CleanString(nc.Schedule)
	nc.Semester = core.CleanString(nc.Semester)
	cleanCategories(nc.GradeCategories)
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Clean()
	return validate.Struct(nc)
}

// Course builds the Course to be stored, applying defaults on omitted fields.
func (nc NewCourse) Course() Course {
	c := Course{
		Name:            nc.Name,
		Instructor:      nc.Instructor,
		Color:           nc.Color,
		Schedule:        nc.Schedule,
		Semester:        nc.Semester,
		TargetGrade:     DefaultTargetGrade,
		CurrentGrade:    null.Float64From(DefaultCurrentGrade),
		GradeCategories: nc.GradeCategories,
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if nc.TargetGrade != nil {
		c.TargetGrade = *nc.TargetGrade
	}
	if nc.CurrentGrade != nil {
		c.CurrentGrade = null.Float64From(*nc.CurrentGrade)
	}
	if c.GradeCategories == nil {
		c.GradeCategories = []GradeCategory{}
	}
	c.syncGrade()
	return c
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Only non-nil fields are applied.
type UpdateCourse struct {
	Name            *string          `json:"name" validate:"omitempty,min=1"`
	Instructor      *string          `json:"instructor"`
	Color           *string          `json:"color" validate:"omitempty,hexcolor"`
	Schedule        *string          `json:"schedule"`
	Semester        *string          `json:"semester"`
	TargetGrade     *float64         `json:"target_grade" validate:"omitempty,percent"`
	CurrentGrade    *float64         `json:"current_grade" validate:"omitempty,percent"`
	GradeCategories *[]GradeCategory `json:"grade_categories" validate:"omitempty,weights,catnames,dive"`
}

func (uc *UpdateCourse) Clean() {
	clean := func(s *string) {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	clean(uc.Name)
	clean(uc.Instructor)
	clean(uc.Color)
	clean(uc.Schedule)
	clean(uc.Semester)
	if uc.GradeCategories != nil {
		cleanCategories(*uc.GradeCategories)
	}
}

func cleanCategories(cats []GradeCategory) {
	for i := range cats {
		cats[i].Name = core.CleanString(cats[i].Name)
		if cats[i].Grades == nil {
			cats[i].Grades = []float64{}
		}
	}
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Clean()
	return validate.Struct(uc)
}

// Apply merges the set fields into `c`.
func (uc UpdateCourse) Apply(c Course) Course {
	if uc.Name != nil {
		c.Name = *uc.Name
	}
	if uc.Instructor != nil {
		c.Instructor = *uc.Instructor
	}
	if uc.Color != nil {
		c.Color = *uc.Color
	}
	if uc.Schedule != nil {
		c.Schedule = *uc.Schedule
	}
	if uc.Semester != nil {
		c.Semester = *uc.Semester
	}
	if uc.TargetGrade != nil {
		c.TargetGrade = *uc.TargetGrade
	}
	if uc.CurrentGrade != nil {
		c.CurrentGrade = null.Float64From(*uc.CurrentGrade)
	}
	if uc.GradeCategories != nil {
		c.GradeCategories = *uc.GradeCategories
		if c.GradeCategories == nil {
			c.GradeCategories = []GradeCategory{}
		}
	}
	c.syncGrade()
	return c
}

// NewGrade is a single grade entry recorded into a course category.
type NewGrade struct {
	Category string  `json:"category" validate:"required"`
	Grade    float64 `json:"grade" validate:"percent"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Category = core.CleanString(ng.Category)
	return validate.Struct(ng)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Filter keeps the courses whose Name or Instructor contains the search keyword (case-insensitive).
func Filter(courses []Course, filter QueryFilter) []Course {
	filtered := make([]Course, 0, len(courses))
	for _, c := range courses {
		if filter.Search == "" ||
			core.ContainsFold(c.Name, filter.Search) ||
			core.ContainsFold(c.Instructor, filter.Search) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Names maps course IDs to their names.
func Names(courses []Course) map[int]string {
	names := make(map[int]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names
}
