package assignment

import (
	"sort"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

// QueryFilter holds the optional assignment predicates; zero values mean "no constraint".
type QueryFilter struct {
	Search   string   `query:"search"`
	CourseID int      `query:"course_id"`
	Status   Status   `query:"status"`
	Priority Priority `query:"priority"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.CourseID == 0 && qf.Status == "" && qf.Priority == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = Status(core.CleanString(string(qf.Status), true /* lower */))
	qf.Priority = Priority(core.CleanString(string(qf.Priority), true /* lower */))
}

// Match applies AND on the set predicates.
// Search does a case-insensitive match on one of Assignment.Title or Assignment.Description.
func (qf QueryFilter) Match(a Assignment) bool {
	if qf.Search != "" && !(core.ContainsFold(a.Title, qf.Search) || core.ContainsFold(a.Description, qf.Search)) {
		return false
	}
	if qf.CourseID != 0 && a.CourseID != qf.CourseID {
		return false
	}
	if qf.Status != "" && a.Status != qf.Status {
		return false
	}
	if qf.Priority != "" && a.Priority != qf.Priority {
		return false
	}
	return true
}

// Filter returns the assignments matching `filter`, in their original order. `list` is left untouched.
func Filter(list []Assignment, filter QueryFilter) []Assignment {
	filtered := make([]Assignment, 0, len(list))
	for _, a := range list {
		if filter.Match(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// Counts holds the number of pending & completed assignments of a course.
type Counts struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// CountByCourse tallies pending & completed assignments per course ID.
func CountByCourse(list []Assignment) map[int]Counts {
	counts := make(map[int]Counts)
	for _, a := range list {
		cnt := counts[a.CourseID]
		switch a.Status {
		case StatusPending:
			cnt.Pending++
		case StatusCompleted:
			cnt.Completed++
		}
		counts[a.CourseID] = cnt
	}
	return counts
}

// Graded returns the assignments of `courseID` holding a grade, by due date.
func Graded(list []Assignment, courseID int) []Assignment {
	graded := make([]Assignment, 0)
	for _, a := range list {
		if a.CourseID == courseID && a.Grade.Valid {
			graded = append(graded, a)
		}
	}
	sort.SliceStable(graded, func(i, j int) bool { return graded[i].DueDate.Before(graded[j].DueDate) })
	return graded
}
