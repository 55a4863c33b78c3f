package assignment

import "time"

const (
	DayKeyLayout    = "2006-01-02"
	DayPreviewLimit = 3
)

// DayKey formats `t` as a calendar day key, in `loc`.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// MonthGrid returns the Sunday-start weeks covering `month`, days outside the month included.
func MonthGrid(year int, month time.Month, loc *time.Location) [][]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := StartOfWeek(first)
	end := StartOfWeek(last).AddDate(0, 0, 6)

	var weeks [][]time.Time
	for day := start; !day.After(end); {
		week := make([]time.Time, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, day)
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// GroupByDay indexes assignments by the DayKey of their due date.
func GroupByDay(list []Assignment, loc *time.Location) map[string][]Assignment {
	days := make(map[string][]Assignment)
	for _, a := range list {
		key := DayKey(a.DueDate, loc)
		days[key] = append(days[key], a)
	}
	return days
}

// DayPreview keeps the first `limit` assignments of a day and reports how many more there are.
func DayPreview(list []Assignment, limit int) ([]Assignment, int) {
	if limit < 0 || len(list) <= limit {
		return list, 0
	}
	return list[:limit], len(list) - limit
}
