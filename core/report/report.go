package report

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/grading"
)

var nowFunc = time.Now // mockable

type (
	// Item is an assignment decorated with what it takes to display it in a list.
	Item struct {
		assignment.Assignment
		CourseName  string `json:"course_name"`
		CourseColor string `json:"course_color"`
		DueLabel    string `json:"due_label"`
		DueColor    string `json:"due_color"`
	}

	Dashboard struct {
		CourseCount   int              `json:"course_count"`
		PendingCount  int              `json:"pending_count"`
		Overall       float64          `json:"overall"`
		OverallLetter grading.Letter   `json:"overall_letter"`
		Stats         assignment.Stats `json:"stats"`
		DueToday      []Item           `json:"due_today"`
		Upcoming      []Item           `json:"upcoming"`
	}

	CategoryAverage struct {
		Name    string       `json:"name"`
		Weight  float64      `json:"weight"`
		Count   int          `json:"count"`
		Average null.Float64 `json:"average"`
	}

	CourseGrade struct {
		Course     course.Course           `json:"course"`
		Grade      null.Float64            `json:"grade"`
		Letter     grading.Letter          `json:"letter"`
		Progress   float64                 `json:"progress"`
		OnTrack    bool                    `json:"on_track"`
		Categories []CategoryAverage       `json:"categories"`
		Graded     []assignment.Assignment `json:"graded"`
	}

	Grades struct {
		Overall      float64        `json:"overall"`
		Letter       grading.Letter `json:"letter"`
		Distribution map[string]int `json:"distribution"`
		Highest      null.Float64   `json:"highest"`
		Lowest       null.Float64   `json:"lowest"`
		OnTrackCount int            `json:"on_track_count"`
		Courses      []CourseGrade  `json:"courses"`
	}

	CalendarDay struct {
		Date        string                  `json:"date"`
		Day         int                     `json:"day"`
		InMonth     bool                    `json:"in_month"`
		IsToday     bool                    `json:"is_today"`
		Assignments []assignment.Assignment `json:"assignments"`
		More        int                     `json:"more"`
	}

	Calendar struct {
		Year  int             `json:"year"`
		Month time.Month      `json:"month"`
		Weeks [][]CalendarDay `json:"weeks"`
	}

	CourseSummary struct {
		Course    course.Course  `json:"course"`
		Grade     null.Float64   `json:"grade"`
		Letter    grading.Letter `json:"letter"`
		Progress  float64        `json:"progress"`
		Pending   int            `json:"pending"`
		Completed int            `json:"completed"`
	}

	Snapshot struct {
		TakenAt     time.Time               `json:"taken_at"`
		Courses     []course.Course         `json:"courses"`
		Assignments []assignment.Assignment `json:"assignments"`
	}
)

// Service builds read-only views over courses & assignments.
type Service struct {
	courses     *course.Service
	assignments *assignment.Service
	horizonDays int
}

// NewService returns a report service; `horizonDays` bounds the upcoming list (non-positive means the default).
func NewService(courses *course.Service, assignments *assignment.Service, horizonDays int) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(courses, "courses"),
		vala.IsNotNil(assignments, "assignments"),
	).CheckAndPanic()

	if horizonDays <= 0 {
		horizonDays = assignment.DefaultHorizonDays
	}
	return &Service{courses: courses, assignments: assignments, horizonDays: horizonDays}
}

func (svc *Service) load(ctx context.Context) ([]course.Course, []assignment.Assignment, error) {
	courses, err := svc.courses.QueryAll(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying courses")
	}
	assignments, err := svc.assignments.QueryAll(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying assignments")
	}
	return courses, assignments, nil
}

func items(list []assignment.Assignment, courses map[int]course.Course, now time.Time) []Item {
	res := make([]Item, 0, len(list))
	for _, a := range list {
		c := courses[a.CourseID] // zero Course when orphaned
		res = append(res, Item{
			Assignment:  a,
			CourseName:  c.Name,
			CourseColor: c.Color,
			DueLabel:    assignment.DueLabel(a.DueDate, now),
			DueColor:    assignment.DueColor(a.DueDate, now),
		})
	}
	return res
}

func index(courses []course.Course) map[int]course.Course {
	idx := make(map[int]course.Course, len(courses))
	for _, c := range courses {
		idx[c.ID] = c
	}
	return idx
}

func (svc *Service) Dashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	courses, list, err := svc.load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	byID := index(courses)
	overall := grading.OverallAverage(courses)
	stats := assignment.Summarize(list, now)

	return Dashboard{
		CourseCount:   len(courses),
		PendingCount:  stats.Pending,
		Overall:       overall,
		OverallLetter: grading.LetterGrade(overall),
		Stats:         stats,
		DueToday:      items(assignment.DueToday(list, now), byID, now),
		Upcoming:      items(assignment.Upcoming(list, now, svc.horizonDays), byID, now),
	}, nil
}

// Upcoming lists the assignments due within the configured horizon.
func (svc *Service) Upcoming(ctx context.Context, now time.Time) ([]Item, error) {
	return svc.UpcomingWithin(ctx, now, svc.horizonDays)
}

// UpcomingWithin lists the assignments due in the next `days` days.
func (svc *Service) UpcomingWithin(ctx context.Context, now time.Time, days int) ([]Item, error) {
	courses, list, err := svc.load(ctx)
	if err != nil {
		return nil, err
	}
	return items(assignment.Upcoming(list, now, days), index(courses), now), nil
}

func (svc *Service) Grades(ctx context.Context) (Grades, error) {
	courses, list, err := svc.load(ctx)
	if err != nil {
		return Grades{}, err
	}

	overall := grading.OverallAverage(courses)
	rep := Grades{
		Overall:      overall,
		Letter:       grading.LetterGrade(overall),
		Distribution: grading.Distribution(courses),
		Highest:      grading.Highest(courses),
		Lowest:       grading.Lowest(courses),
		OnTrackCount: grading.OnTrackCount(courses),
		Courses:      make([]CourseGrade, 0, len(courses)),
	}
	for _, c := range courses {
		grade := c.Grade()
		cats := make([]CategoryAverage, 0, len(c.GradeCategories))
		for _, gc := range c.GradeCategories {
			cats = append(cats, CategoryAverage{
				Name:    gc.Name,
				Weight:  gc.Weight,
				Count:   len(gc.Grades),
				Average: gc.Average(),
			})
		}
		rep.Courses = append(rep.Courses, CourseGrade{
			Course:     c,
			Grade:      grade,
			Letter:     grading.LetterGrade(grade.Float64),
			Progress:   grading.CourseProgress(c),
			OnTrack:    grading.CourseOnTrack(c),
			Categories: cats,
			Graded:     assignment.Graded(list, c.ID),
		})
	}
	return rep, nil
}

// Calendar lays out the month in Sunday-start weeks, in now's location.
func (svc *Service) Calendar(ctx context.Context, year int, month time.Month, now time.Time) (Calendar, error) {
	list, err := svc.assignments.QueryAll(ctx)
	if err != nil {
		return Calendar{}, errors.Wrap(err, "querying assignments")
	}

	loc := now.Location()
	days := assignment.GroupByDay(list, loc)
	today := assignment.DayKey(now, loc)

	grid := assignment.MonthGrid(year, month, loc)
	cal := Calendar{Year: year, Month: month, Weeks: make([][]CalendarDay, 0, len(grid))}
	for _, week := range grid {
		row := make([]CalendarDay, 0, len(week))
		for _, day := range week {
			key := assignment.DayKey(day, loc)
			shown, more := assignment.DayPreview(days[key], assignment.DayPreviewLimit)
			if shown == nil {
				shown = []assignment.Assignment{}
			}
			row = append(row, CalendarDay{
				Date:        key,
				Day:         day.Day(),
				InMonth:     day.Month() == month,
				IsToday:     key == today,
				Assignments: shown,
				More:        more,
			})
		}
		cal.Weeks = append(cal.Weeks, row)
	}
	return cal, nil
}

func (svc *Service) Courses(ctx context.Context, filter course.QueryFilter) ([]CourseSummary, error) {
	courses, err := svc.courses.Query(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	list, err := svc.assignments.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}

	counts := assignment.CountByCourse(list)
	res := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		grade := c.Grade()
		cnt := counts[c.ID]
		res = append(res, CourseSummary{
			Course:    c,
			Grade:     grade,
			Letter:    grading.LetterGrade(grade.Float64),
			Progress:  grading.CourseProgress(c),
			Pending:   cnt.Pending,
			Completed: cnt.Completed,
		})
	}
	return res, nil
}

// Snapshot dumps every course & assignment.
func (svc *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	courses, list, err := svc.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{TakenAt: nowFunc().UTC(), Courses: courses, Assignments: list}, nil
}
