package assignment

import (
	"sort"
	"time"
)

// DueClass buckets an assignment by due date relative to "now".
type DueClass string

const (
	ClassOverdue     DueClass = "overdue"
	ClassDueToday    DueClass = "due-today"
	ClassDueTomorrow DueClass = "due-tomorrow"
	ClassDueThisWeek DueClass = "due-this-week"
	ClassLater       DueClass = "later"
)

const (
	DefaultHorizonDays = 7
	UpcomingLimit      = 5 // display cap
)

// Due date colors
const (
	DueColorToday    = "red"
	DueColorTomorrow = "yellow"
)

// StartOfDay truncates `t` to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday starting the week of `t`.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isToday(t, now time.Time) bool {
	return sameDay(t.In(now.Location()), now)
}

func isTomorrow(t, now time.Time) bool {
	return sameDay(t.In(now.Location()), StartOfDay(now).AddDate(0, 0, 1))
}

func isThisWeek(t, now time.Time) bool {
	start := StartOfWeek(now)
	t = t.In(now.Location())
	return !t.Before(start) && t.Before(start.AddDate(0, 0, 7))
}

// Classify buckets `a` relative to `now`; calendar days are those of now's location.
// Only pending assignments due strictly before `now` are overdue.
func Classify(a Assignment, now time.Time) DueClass {
	switch {
	case a.IsOverdue(now):
		return ClassOverdue
	case isToday(a.DueDate, now):
		return ClassDueToday
	case isTomorrow(a.DueDate, now):
		return ClassDueTomorrow
	case isThisWeek(a.DueDate, now):
		return ClassDueThisWeek
	default:
		return ClassLater
	}
}

// Upcoming returns the pending assignments due within [now, now+horizonDays], soonest first, capped to
// UpcomingLimit. A non-positive horizon means DefaultHorizonDays.
func Upcoming(list []Assignment, now time.Time, horizonDays int) []Assignment {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	until := now.AddDate(0, 0, horizonDays)

	upcoming := make([]Assignment, 0)
	for _, a := range list {
		if a.IsPending() && !a.DueDate.Before(now) && !a.DueDate.After(until) {
			upcoming = append(upcoming, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	if len(upcoming) > UpcomingLimit {
		upcoming = upcoming[:UpcomingLimit]
	}
	return upcoming
}

// DueToday returns the pending assignments due on now's calendar day.
func DueToday(list []Assignment, now time.Time) []Assignment {
	today := make([]Assignment, 0)
	for _, a := range list {
		if a.IsPending() && isToday(a.DueDate, now) {
			today = append(today, a)
		}
	}
	return today
}

// DueLabel renders a due date the way the dashboard shows it:
// "Today", "Tomorrow", the weekday name within this week, "Jan 02" otherwise.
func DueLabel(due, now time.Time) string {
	switch {
	case isToday(due, now):
		return "Today"
	case isTomorrow(due, now):
		return "Tomorrow"
	case isThisWeek(due, now):
		return due.In(now.Location()).Weekday().String()
	default:
		return due.In(now.Location()).Format("Jan 02")
	}
}

// DueColor is the presentation tag of a due date: red today, yellow tomorrow, none otherwise.
func DueColor(due, now time.Time) string {
	switch {
	case isToday(due, now):
		return DueColorToday
	case isTomorrow(due, now):
		return DueColorTomorrow
	default:
		return ""
	}
}

type Stats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Completed    int `json:"completed"`
	HighPriority int `json:"high_priority"` // pending only
	Overdue      int `json:"overdue"`
}

func Summarize(list []Assignment, now time.Time) Stats {
	stats := Stats{Total: len(list)}
	for _, a := range list {
		switch a.Status {
		case StatusPending:
			stats.Pending++
			if a.Priority == PriorityHigh {
				stats.HighPriority++
			}
			if a.IsOverdue(now) {
				stats.Overdue++
			}
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}
