package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	dummydb "github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
)

var now = time.Date(2024, time.October, 16, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *assignment.Service {
	t.Helper()
	db, err := dummydb.Open(dummydb.Options{Fixtures: true, Now: now})
	require.NoError(t, err)
	return assignment.NewService(dummydb.NewAssignmentRepository(db))
}

func ids(list []assignment.Assignment) []int {
	res := make([]int, 0, len(list))
	for _, a := range list {
		res = append(res, a.ID)
	}
	return res
}

// stubRepository satisfies assignment.Repository through its nil embedded interface.
type stubRepository struct {
	assignment.Repository
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() { assignment.NewService(nil) })

	var typedNil *stubRepository
	assert.Panics(t, func() { assignment.NewService(typedNil) })
	assert.Panics(t, func() { assignment.NewService(stubRepository{}) })
	assert.NotPanics(t, func() { assignment.NewService(&stubRepository{}) })
}

func TestService_Query(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	names := map[int]string{1: "Calculus II", 2: "Organic Chemistry", 3: "World History", 4: "Intro to Programming"}

	tests := []struct {
		name   string
		filter assignment.QueryFilter
		ord    assignment.Ordering
		want   []int
	}{
		{name: "all", ord: assignment.DefaultOrdering, want: []int{8, 7, 6, 1, 2, 3, 4, 5}},
		{name: "course", filter: assignment.QueryFilter{CourseID: 1}, ord: assignment.DefaultOrdering, want: []int{7, 1, 5}},
		{
			name:   "course desc",
			filter: assignment.QueryFilter{CourseID: 1},
			ord:    assignment.Ordering{Field: assignment.SortByDueDate, Direction: assignment.Desc},
			want:   []int{5, 1, 7},
		},
		{
			name:   "pending high",
			filter: assignment.QueryFilter{Status: assignment.StatusPending, Priority: assignment.PriorityHigh},
			ord:    assignment.DefaultOrdering,
			want:   []int{1, 2},
		},
		{
			name:   "completed by course name",
			filter: assignment.QueryFilter{Status: assignment.StatusCompleted},
			ord:    assignment.Ordering{Field: assignment.SortByCourse, Direction: assignment.Desc},
			want:   []int{8, 7},
		},
		{name: "unknown course", filter: assignment.QueryFilter{CourseID: 42}, ord: assignment.DefaultOrdering, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.Query(ctx, tt.filter, tt.ord, names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestService_Create(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, assignment.NewAssignment{Title: "Quiz 3", CourseID: 2, DueDate: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 9, a.ID)
	assert.Equal(t, assignment.StatusPending, a.Status)
	assert.Equal(t, assignment.PriorityMedium, a.Priority)
	assert.False(t, a.Grade.Valid)

	got, err := svc.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestService_Update(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	grade := 91.5
	a, err := svc.Update(ctx, 1, assignment.UpdateAssignment{Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, 91.5, a.Grade.Float64)
	assert.Equal(t, "Problem Set 5", a.Title)

	_, err = svc.Update(ctx, 42, assignment.UpdateAssignment{Grade: &grade})
	assert.True(t, core.IsNotFound(err))
}

func TestService_ToggleStatus(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.ToggleStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCompleted, a.Status)

	a, err = svc.ToggleStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusPending, a.Status)

	stored, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusPending, stored.Status)

	_, err = svc.ToggleStatus(ctx, 42)
	assert.True(t, core.IsNotFound(err))
}

func TestService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, 8)
	require.NoError(t, err)
	assert.True(t, deleted)

	list, err := svc.QueryByCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(list))

	_, err = svc.Delete(ctx, 8)
	assert.True(t, core.IsNotFound(err))
}
