package dummydb

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

func float(f float64) *float64 { return &f }

// CourseFixtures are inserted in order: IDs 1 to 4.
func CourseFixtures() []course.Course {
	return []course.Course{
		course.NewCourse{
			Name:        "Calculus II",
			Instructor:  "Dr. Sarah Mitchell",
			Color:       "#8B7FFF",
			Schedule:    "Mon, Wed, Fri 9:00 AM",
			Semester:    "Fall 2024",
			TargetGrade: float(90),
			GradeCategories: []course.GradeCategory{
				{Name: "Homework", Weight: 30, Grades: []float64{92, 88, 95}},
				{Name: "Exams", Weight: 50, Grades: []float64{85, 89}},
				{Name: "Quizzes", Weight: 20, Grades: []float64{90}},
			},
		}.Course(),
		course.NewCourse{
			Name:        "Organic Chemistry",
			Instructor:  "Prof. James Chen",
			Color:       "#FF6B6B",
			Schedule:    "Tue, Thu 11:00 AM",
			Semester:    "Fall 2024",
			TargetGrade: float(85),
			GradeCategories: []course.GradeCategory{
				{Name: "Labs", Weight: 40, Grades: []float64{78, 82}},
				{Name: "Exams", Weight: 60, Grades: []float64{74}},
			},
		}.Course(),
		course.NewCourse{
			Name:         "World History",
			Instructor:   "Dr. Emily Rodriguez",
			Color:        "#4ECDC4",
			Schedule:     "Mon, Wed 2:00 PM",
			Semester:     "Fall 2024",
			TargetGrade:  float(80),
			CurrentGrade: float(91),
		}.Course(),
		course.NewCourse{
			Name:        "Intro to Programming",
			Instructor:  "Prof. Alan Park",
			Color:       "#FECA57",
			Schedule:    "Tue, Thu 3:30 PM",
			Semester:    "Fall 2024",
			TargetGrade: float(95),
			GradeCategories: []course.GradeCategory{
				{Name: "Projects", Weight: 60, Grades: []float64{}},
				{Name: "Exams", Weight: 40, Grades: []float64{}},
			},
		}.Course(),
	}
}

// AssignmentFixtures have due dates relative to `now`, so that every dashboard bucket has content.
func AssignmentFixtures(now time.Time) []assignment.Assignment {
	day := 24 * time.Hour
	return []assignment.Assignment{
		{
			Title:       "Problem Set 5",
			CourseID:    1,
			DueDate:     now.Add(4 * time.Hour),
			Priority:    assignment.PriorityHigh,
			Status:      assignment.StatusPending,
			Description: "Integration by parts, exercises 1 to 20",
			Category:    "Homework",
		},
		{
			Title:       "Lab Report: Alkenes",
			CourseID:    2,
			DueDate:     now.Add(day),
			Priority:    assignment.PriorityHigh,
			Status:      assignment.StatusPending,
			Description: "Write up the synthesis lab",
			Category:    "Labs",
		},
		{
			Title:       "Essay: Industrial Revolution",
			CourseID:    3,
			DueDate:     now.Add(3 * day),
			Priority:    assignment.PriorityMedium,
			Status:      assignment.StatusPending,
			Description: "1500 words on its social impact",
		},
		{
			Title:       "Project 2: Todo CLI",
			CourseID:    4,
			DueDate:     now.Add(6 * day),
			Priority:    assignment.PriorityMedium,
			Status:      assignment.StatusPending,
			Description: "Command line todo manager",
			Category:    "Projects",
		},
		{
			Title:       "Midterm Review",
			CourseID:    1,
			DueDate:     now.Add(12 * day),
			Priority:    assignment.PriorityLow,
			Status:      assignment.StatusPending,
			Description: "Review chapters 5 to 8",
			Category:    "Exams",
		},
		{
			Title:       "Reading: Chapter 12",
			CourseID:    3,
			DueDate:     now.Add(-2 * day),
			Priority:    assignment.PriorityLow,
			Status:      assignment.StatusPending,
			Description: "Notes on the French Revolution",
		},
		{
			Title:       "Problem Set 4",
			CourseID:    1,
			DueDate:     now.Add(-5 * day),
			Priority:    assignment.PriorityMedium,
			Status:      assignment.StatusCompleted,
			Description: "Substitution",
			Grade:       null.Float64From(95),
			Category:    "Homework",
		},
		{
			Title:       "Quiz 3",
			CourseID:    2,
			DueDate:     now.Add(-8 * day),
			Priority:    assignment.PriorityMedium,
			Status:      assignment.StatusCompleted,
			Description: "Stereochemistry",
			Grade:       null.Float64From(82),
			Category:    "Labs",
		},
	}
}
