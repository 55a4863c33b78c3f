// Package grading aggregates course grades into the figures shown on the dashboard & grades pages.
// Nothing here fails: missing data degrades to null or zero.
package grading

import (
	"fmt"
	"math"

	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

// Letters
const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterD = "D"
	LetterF = "F"
)

// Letters lists the letters from best to worst.
var Letters = []string{LetterA, LetterB, LetterC, LetterD, LetterF}

// Letter colors
const (
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
)

type Letter struct {
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

// lower bounds are inclusive
var thresholds = []struct {
	min    float64
	letter Letter
}{
	{90, Letter{LetterA, ColorGreen}},
	{80, Letter{LetterB, ColorBlue}},
	{70, Letter{LetterC, ColorYellow}},
	{60, Letter{LetterD, ColorOrange}},
}

// LetterGrade maps a percentage to its letter: A>=90, B>=80, C>=70, D>=60, F otherwise.
func LetterGrade(pct float64) Letter {
	for _, th := range thresholds {
		if pct >= th.min {
			return th.letter
		}
	}
	return Letter{LetterF, ColorRed}
}

// CourseAverage is the course's category-weighted average, null when no category holds an entry.
func CourseAverage(c course.Course) null.Float64 {
	return c.Average()
}

// OverallAverage is the mean of the courses' grades, courses without one excluded; 0 when none has a grade.
func OverallAverage(courses []course.Course) float64 {
	var (
		sum float64
		n   int
	)
	for _, c := range courses {
		if g := c.Grade(); g.Valid {
			sum += g.Float64
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Progress is current/target as a percentage, capped at 100. A non-positive target yields 0.
func Progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(current/target*100, 100)
}

func OnTrack(current, target float64) bool {
	return current >= target
}

// CourseProgress is Progress of the course's grade against its target, a null grade counting as 0.
func CourseProgress(c course.Course) float64 {
	return Progress(c.Grade().Float64, c.TargetGrade)
}

// CourseOnTrack reports whether the course's grade meets its target, a null grade counting as 0.
func CourseOnTrack(c course.Course) bool {
	return OnTrack(c.Grade().Float64, c.TargetGrade)
}

// Distribution counts graded courses per letter; every letter is present.
func Distribution(courses []course.Course) map[string]int {
	dist := make(map[string]int, len(Letters))
	for _, l := range Letters {
		dist[l] = 0
	}
	for _, c := range courses {
		if g := c.Grade(); g.Valid {
			dist[LetterGrade(g.Float64).Letter]++
		}
	}
	return dist
}

func extremum(courses []course.Course, better func(a, b float64) bool) null.Float64 {
	var ext null.Float64
	for _, c := range courses {
		g := c.Grade()
		if g.Valid && (!ext.Valid || better(g.Float64, ext.Float64)) {
			ext = g
		}
	}
	return ext
}

// Highest is the best course grade, null when no course has a grade.
func Highest(courses []course.Course) null.Float64 {
	return extremum(courses, func(a, b float64) bool { return a > b })
}

// Lowest is the worst course grade, null when no course has a grade.
func Lowest(courses []course.Course) null.Float64 {
	return extremum(courses, func(a, b float64) bool { return a < b })
}

func OnTrackCount(courses []course.Course) int {
	var n int
	for _, c := range courses {
		if CourseOnTrack(c) {
			n++
		}
	}
	return n
}

// FormatScore renders a score as "85.0%", or "N/A" when null.
func FormatScore(score null.Float64) string {
	if !score.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", score.Float64)
}
