package echoapi_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
)

func Test_assignmentApi_query(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "Get all (by due date)", path: "/v1/assignments", wantData: marchallList(t, app.getAssignments(t, 8, 7, 6, 1, 2, 3, 4, 5)...)},
		{name: "search (unknown)", path: "/v1/assignments?search=lol", wantData: marchallList(t)},
		{name: "search on title", path: "/v1/assignments?search=PROBLEM", wantData: marchallList(t, app.getAssignments(t, 7, 1)...)},
		{name: "search on description", path: "/v1/assignments?search=revolution", wantData: marchallList(t, app.getAssignments(t, 6, 3)...)},
		{name: "course_id", path: "/v1/assignments?course_id=2", wantData: marchallList(t, app.getAssignments(t, 8, 2)...)},
		{name: "status", path: "/v1/assignments?status=Completed", wantData: marchallList(t, app.getAssignments(t, 8, 7)...)},
		{name: "priority", path: "/v1/assignments?priority=high", wantData: marchallList(t, app.getAssignments(t, 1, 2)...)},
		{
			name:     "filters are ANDed",
			path:     "/v1/assignments?course_id=1&status=pending&search=set",
			wantData: marchallList(t, app.getAssignments(t, 1)...),
		},
		{name: "unknown status", path: "/v1/assignments?status=lol", wantData: marchallList(t)},
		{
			name:     "ordering=title",
			path:     "/v1/assignments?ordering=title",
			wantData: marchallList(t, app.getAssignments(t, 3, 2, 5, 7, 1, 4, 8, 6)...),
		},
		{
			name:     "ordering=-due_date",
			path:     "/v1/assignments?ordering=-due_date",
			wantData: marchallList(t, app.getAssignments(t, 5, 4, 3, 2, 1, 6, 7, 8)...),
		},
		{
			// course names DESC, ties kept by due date
			name:     "ordering=-course_id",
			path:     "/v1/assignments?ordering=-course_id",
			wantData: marchallList(t, app.getAssignments(t, 6, 3, 8, 2, 4, 7, 1, 5)...),
		},
		{
			name:     "filtered & ordered",
			path:     "/v1/assignments?status=pending&ordering=-priority",
			wantData: marchallList(t, app.getAssignments(t, 3, 4, 6, 5, 1, 2)...),
		},
		{
			name:     "unknown ordering",
			path:     "/v1/assignments?ordering=lol",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: map[string]string{"ordering": "unknown field lol"}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}

func Test_assignmentApi_create(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "required fields",
			body:     []byte(`{"description": "nothing else"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: map[string]string{
				"title":     "this field is required",
				"course_id": "this field is required",
				"due_date":  "this field is required",
			}}),
		},
		{
			name:     "invalid priority",
			body:     []byte(`{"title": "Essay", "course_id": 3, "due_date": "2024-10-20T09:00:00Z", "priority": "urgent"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: map[string]string{"priority": "priority must be one of low, medium or high"}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodPost
			tt.path = "/v1/assignments"
			checkCodeAndData(t, tt, app.do(tt))
		})
	}

	t.Run("defaults", func(t *testing.T) {
		rec := app.do(httpTest{
			method: http.MethodPost,
			path:   "/v1/assignments",
			body:   []byte(`{"title": " Essay 2 ", "course_id": 3, "due_date": "2024-10-20T09:00:00Z", "status": "completed"}`),
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var a assignment.Assignment
		unmarshal(t, rec, &a)
		assert.Equal(t, 9, a.ID)
		assert.Equal(t, "Essay 2", a.Title)
		assert.Equal(t, assignment.StatusPending, a.Status)
		assert.Equal(t, assignment.PriorityMedium, a.Priority)
		assert.False(t, a.Grade.Valid)
		assert.True(t, a.DueDate.Equal(time.Date(2024, time.October, 20, 9, 0, 0, 0, time.UTC)))
	})

	t.Run("unknown course is tolerated", func(t *testing.T) {
		rec := app.do(httpTest{
			method: http.MethodPost,
			path:   "/v1/assignments",
			body:   []byte(`{"title": "Orphan", "course_id": 42, "due_date": "2024-10-20T09:00:00Z", "priority": "HIGH"}`),
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var a assignment.Assignment
		unmarshal(t, rec, &a)
		assert.Equal(t, 42, a.CourseID)
		assert.Equal(t, assignment.PriorityHigh, a.Priority)
	})
}

func Test_assignmentApi_retrieve(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "404", path: "/v1/assignments/999", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "200", path: "/v1/assignments/7", wantData: marchallObj(t, app.getAssignment(t, 7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}

func Test_assignmentApi_update(t *testing.T) {
	app := setup(t)

	t.Run("invalid", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPut,
			path:     "/v1/assignments/1",
			body:     []byte(`{"status": "done", "grade": 120}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: map[string]string{
				"status": "status must be one of pending or completed",
				"grade":  "grade must be between 0 and 100",
			}}),
		}
		checkCodeAndData(t, tt, app.do(tt))
	})

	t.Run("grade", func(t *testing.T) {
		want := app.getAssignment(t, 1)
		want.Grade.SetValid(90)
		want.Status = assignment.StatusCompleted

		tt := httpTest{
			method:   http.MethodPut,
			path:     "/v1/assignments/1",
			body:     []byte(`{"grade": 90, "status": "completed"}`),
			wantData: marchallObj(t, want),
		}
		checkCodeAndData(t, tt, app.do(tt))
		assert.Equal(t, want, app.getAssignment(t, 1))
	})

	t.Run("clear grade", func(t *testing.T) {
		rec := app.do(httpTest{method: http.MethodPut, path: "/v1/assignments/7", body: []byte(`{"clear_grade": true}`)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var a assignment.Assignment
		unmarshal(t, rec, &a)
		assert.False(t, a.Grade.Valid)
		assert.Equal(t, "Problem Set 4", a.Title)
	})
}

func Test_assignmentApi_destroy(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "404", method: http.MethodDelete, path: "/v1/assignments/999", wantCode: http.StatusNotFound},
		{name: "204", method: http.MethodDelete, path: "/v1/assignments/3", wantCode: http.StatusNoContent},
		{name: "gone", path: "/v1/assignments/3", wantCode: http.StatusNotFound},
		{name: "listing", path: "/v1/assignments?course_id=3", wantData: marchallList(t, app.getAssignments(t, 6)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}

func Test_assignmentApi_toggle(t *testing.T) {
	app := setup(t)

	toggle := func(t *testing.T, id int) assignment.Assignment {
		rec := app.do(httpTest{method: http.MethodPost, path: "/v1/assignments/" + strconv.Itoa(id) + "/toggle"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var a assignment.Assignment
		unmarshal(t, rec, &a)
		return a
	}

	t.Run("pending -> completed -> pending", func(t *testing.T) {
		before := app.getAssignment(t, 2)
		require.Equal(t, assignment.StatusPending, before.Status)

		a := toggle(t, 2)
		assert.Equal(t, assignment.StatusCompleted, a.Status)
		assert.Equal(t, assignment.StatusCompleted, app.getAssignment(t, 2).Status)

		a = toggle(t, 2)
		assert.Equal(t, assignment.StatusPending, a.Status)
		assert.Equal(t, before, app.getAssignment(t, 2))
	})

	t.Run("overdue assignment completed", func(t *testing.T) {
		a := toggle(t, 6)
		assert.Equal(t, assignment.StatusCompleted, a.Status)
		assert.False(t, a.IsOverdue(now))
	})

	t.Run("404", func(t *testing.T) {
		tt := httpTest{method: http.MethodPost, path: "/v1/assignments/999/toggle", wantCode: http.StatusNotFound}
		checkCodeAndData(t, tt, app.do(tt))
	})
}
