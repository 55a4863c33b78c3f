package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, hour int) time.Time {
	return time.Date(2024, time.October, day, hour, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		due    time.Time
		status Status
		want   DueClass
	}{
		{name: "overdue", due: now.Add(-time.Minute), status: StatusPending, want: ClassOverdue},
		{name: "overdue yesterday", due: at(15, 9), status: StatusPending, want: ClassOverdue},
		{name: "due exactly now", due: now, status: StatusPending, want: ClassDueToday},
		{name: "later today", due: at(16, 23), status: StatusPending, want: ClassDueToday},
		{name: "completed earlier today", due: at(16, 8), status: StatusCompleted, want: ClassDueToday},
		{name: "tomorrow midnight", due: at(17, 0), status: StatusPending, want: ClassDueTomorrow},
		{name: "saturday", due: at(19, 23), status: StatusPending, want: ClassDueThisWeek},
		{name: "next sunday", due: at(20, 0), status: StatusPending, want: ClassLater},
		{name: "next month", due: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), status: StatusPending, want: ClassLater},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{DueDate: tt.due, Status: tt.status}
			if got := Classify(a, now); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_completedNeverOverdue(t *testing.T) {
	for _, due := range []time.Time{now.Add(-time.Second), at(14, 10), at(1, 10)} {
		a := Assignment{DueDate: due, Status: StatusCompleted}
		assert.NotEqual(t, ClassOverdue, Classify(a, now), due)
		assert.False(t, a.IsOverdue(now))
	}
}

func TestClassify_location(t *testing.T) {
	// 23:30 UTC is already tomorrow in UTC+3
	due := at(16, 23).Add(30 * time.Minute)
	a := Assignment{DueDate: due, Status: StatusPending}

	assert.Equal(t, ClassDueToday, Classify(a, now))
	assert.Equal(t, ClassDueTomorrow, Classify(a, now.In(time.FixedZone("EAT", 3*3600))))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		t    time.Time
		want time.Time
	}{
		{t: now, want: at(13, 0)},
		{t: at(13, 0), want: at(13, 0)},
		{t: at(19, 23), want: at(13, 0)},
		{t: at(20, 1), want: at(20, 0)},
		{t: time.Date(2024, time.November, 1, 8, 0, 0, 0, time.UTC), want: at(27, 0)},
	}
	for _, tt := range tests {
		if got := StartOfWeek(tt.t); !got.Equal(tt.want) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestUpcoming(t *testing.T) {
	day := 24 * time.Hour

	t.Run("fixtures", func(t *testing.T) {
		// past and completed ones are left out
		assert.Equal(t, []int{1, 2, 3, 4}, ids(Upcoming(testList(), now, DefaultHorizonDays)))
		assert.Equal(t, []int{1, 2, 3}, ids(Upcoming(testList(), now, 3)))
		assert.Equal(t, Upcoming(testList(), now, DefaultHorizonDays), Upcoming(testList(), now, 0))
		assert.Equal(t, Upcoming(testList(), now, DefaultHorizonDays), Upcoming(testList(), now, -1))
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		list := []Assignment{
			{ID: 1, DueDate: now.Add(7 * day), Status: StatusPending},
			{ID: 2, DueDate: now, Status: StatusPending},
			{ID: 3, DueDate: now.Add(7*day + time.Second), Status: StatusPending},
			{ID: 4, DueDate: now.Add(-time.Second), Status: StatusPending},
		}
		assert.Equal(t, []int{2, 1}, ids(Upcoming(list, now, 7)))
	})

	t.Run("capped", func(t *testing.T) {
		var list []Assignment
		for i := 7; i > 0; i-- {
			list = append(list, Assignment{ID: i, DueDate: now.Add(time.Duration(i) * time.Hour), Status: StatusPending})
		}
		got := Upcoming(list, now, 1)
		assert.Len(t, got, UpcomingLimit)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(got))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Upcoming(nil, now, 7))
	})
}

func TestDueToday(t *testing.T) {
	list := append(testList(), Assignment{ID: 7, DueDate: at(16, 8), Status: StatusCompleted})
	assert.Equal(t, []int{1}, ids(DueToday(list, now)))
}

func TestDueLabel(t *testing.T) {
	tests := []struct {
		due       time.Time
		wantLabel string
		wantColor string
	}{
		{due: at(16, 18), wantLabel: "Today", wantColor: DueColorToday},
		{due: at(16, 1), wantLabel: "Today", wantColor: DueColorToday},
		{due: at(17, 10), wantLabel: "Tomorrow", wantColor: DueColorTomorrow},
		{due: at(19, 10), wantLabel: "Saturday"},
		{due: at(14, 10), wantLabel: "Monday"},
		{due: at(22, 10), wantLabel: "Oct 22"},
		{due: time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC), wantLabel: "Jan 02"},
	}
	for _, tt := range tests {
		if got := DueLabel(tt.due, now); got != tt.wantLabel {
			t.Errorf("DueLabel(%v) = %q, want %q", tt.due, got, tt.wantLabel)
		}
		if got := DueColor(tt.due, now); got != tt.wantColor {
			t.Errorf("DueColor(%v) = %q, want %q", tt.due, got, tt.wantColor)
		}
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Stats{Total: 6, Pending: 5, Completed: 1, HighPriority: 2, Overdue: 1}, Summarize(testList(), now))
	assert.Equal(t, Stats{}, Summarize(nil, now))
}
