package assignment

import (
	"sort"
	"strings"
)

type (
	SortField string
	Direction string
)

// Sort fields
const (
	SortByID       SortField = "id"
	SortByTitle    SortField = "title"
	SortByCourse   SortField = "course_id"
	SortByDueDate  SortField = "due_date"
	SortByPriority SortField = "priority"
	SortByStatus   SortField = "status"
)

// Directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	SortFields = []SortField{SortByID, SortByTitle, SortByCourse, SortByDueDate, SortByPriority, SortByStatus}

	DefaultOrdering = Ordering{Field: SortByDueDate, Direction: Asc}
)

func (f SortField) IsValid() bool {
	for _, v := range SortFields {
		if f == v {
			return true
		}
	}
	return false
}

type Ordering struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the ordering after a sort request on `field`:
// the same field flips the direction, another field starts ascending.
func (o Ordering) Toggle(field SortField) Ordering {
	if o.Field == field {
		if o.Direction == Desc {
			return Ordering{Field: field, Direction: Asc}
		}
		return Ordering{Field: field, Direction: Desc}
	}
	return Ordering{Field: field, Direction: Asc}
}

// String formats the ordering as a query param, e.g. "-due_date" for a descending due date.
func (o Ordering) String() string {
	if o.Direction == Desc {
		return "-" + string(o.Field)
	}
	return string(o.Field)
}

// ParseOrdering reads "field" or "-field" (descending).
func ParseOrdering(s string) (Ordering, bool) {
	s = strings.TrimSpace(s)
	dir := Asc
	if strings.HasPrefix(s, "-") {
		dir = Desc
		s = s[1:]
	}
	field := SortField(s)
	if !field.IsValid() {
		return Ordering{}, false
	}
	return Ordering{Field: field, Direction: dir}, true
}

// compare returns -1, 0 or 1. Courses compare by resolved name ("" for unknown courses).
func compare(a, b Assignment, field SortField, courseNames map[int]string) int {
	cmpStr := func(x, y string) int { return strings.Compare(x, y) }
	cmpInt := func(x, y int) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}

	switch field {
	case SortByTitle:
		return cmpStr(a.Title, b.Title)
	case SortByCourse:
		return cmpStr(courseNames[a.CourseID], courseNames[b.CourseID])
	case SortByDueDate:
		switch {
		case a.DueDate.Before(b.DueDate):
			return -1
		case a.DueDate.After(b.DueDate):
			return 1
		}
		return 0
	case SortByPriority:
		return cmpStr(string(a.Priority), string(b.Priority))
	case SortByStatus:
		return cmpStr(string(a.Status), string(b.Status))
	default:
		return cmpInt(a.ID, b.ID)
	}
}

// Sort returns a stably sorted copy of `list`. `courseNames` resolves course IDs when sorting by course.
func Sort(list []Assignment, ord Ordering, courseNames map[int]string) []Assignment {
	sorted := make([]Assignment, len(list))
	copy(sorted, list)

	desc := ord.Direction == Desc
	sort.SliceStable(sorted, func(i, j int) bool {
		c := compare(sorted[i], sorted[j], ord.Field, courseNames)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}
