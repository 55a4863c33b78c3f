// Package testutil holds helpers shared by the record store tests.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/storage/database"
)

// OpenDB opens the database of TEST_DATABASE_URL, migrated and emptied. Tests are skipped when unset.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.OpenURL(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Ping(db))
	require.NoError(t, database.Migrate(db))
	_, err = db.Exec(`TRUNCATE "courses", "assignments" RESTART IDENTITY`)
	require.NoError(t, err)
	return db
}

// RedisAddr returns TEST_REDIS_ADDR. Tests are skipped when unset.
func RedisAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	return addr
}

func CreateCourse(t *testing.T, repo course.Repository, name string, cats ...course.GradeCategory) course.Course {
	t.Helper()
	if cats == nil {
		cats = []course.GradeCategory{}
	}
	c, err := repo.CreateCourse(context.Background(), course.NewCourse{Name: name, GradeCategories: cats}.Course())
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	title string,
	courseID int,
	due time.Time,
) assignment.Assignment {
	t.Helper()
	na := assignment.NewAssignment{Title: title, CourseID: courseID, DueDate: due}
	a, err := repo.CreateAssignment(context.Background(), na.Assignment())
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

// CheckRecordStores runs the behaviour every record store must share against empty stores.
func CheckRecordStores(t *testing.T, courses course.Repository, assignments assignment.Repository) {
	ctx := context.Background()
	// whole seconds in UTC: every backend round-trips them unchanged
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("courses", func(t *testing.T) {
		list, err := courses.QueryAllCourses(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		cats := []course.GradeCategory{
			{Name: "Homework", Weight: 40, Grades: []float64{90, 80}},
			{Name: "Exams", Weight: 60, Grades: []float64{}},
		}
		physics := CreateCourse(t, courses, "Physics", cats...)
		algebra := CreateCourse(t, courses, "Algebra")
		assert.NotZero(t, physics.ID)
		assert.NotEqual(t, physics.ID, algebra.ID)

		got, err := courses.GetCourseByID(ctx, physics.ID)
		require.NoError(t, err)
		assert.Equal(t, physics, got)
		assert.Equal(t, cats, got.GradeCategories)
		assert.Equal(t, null.Float64From(85), got.CurrentGrade)

		list, err = courses.QueryAllCourses(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Algebra", list[0].Name) // by name
		assert.Equal(t, "Physics", list[1].Name)

		physics.Instructor = "Dr. Curie"
		physics.GradeCategories[1].Grades = []float64{70}
		updated, err := courses.UpdateCourse(ctx, physics)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Curie", updated.Instructor)

		got, err = courses.GetCourseByID(ctx, physics.ID)
		require.NoError(t, err)
		assert.Equal(t, []float64{70}, got.GradeCategories[1].Grades)

		_, err = courses.UpdateCourse(ctx, course.Course{ID: 9999, Name: "Ghost", GradeCategories: []course.GradeCategory{}})
		assert.Error(t, err)

		deleted, err := courses.DeleteCourse(ctx, algebra.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = courses.DeleteCourse(ctx, algebra.ID)
		assert.True(t, core.IsNotFound(err), "DeleteCourse() twice: %v", err)
		assert.False(t, deleted)

		_, err = courses.GetCourseByID(ctx, algebra.ID)
		assert.True(t, core.IsNotFound(err), "GetCourseByID() deleted: %v", err)
	})

	t.Run("assignments", func(t *testing.T) {
		list, err := assignments.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		later := CreateAssignment(t, assignments, "Later", 1, now.Add(48*time.Hour))
		sooner := CreateAssignment(t, assignments, "Sooner", 1, now.Add(time.Hour))
		other := CreateAssignment(t, assignments, "Other", 2, now.Add(24*time.Hour))
		orphan := CreateAssignment(t, assignments, "Orphan", 404, now)
		assert.Equal(t, assignment.StatusPending, later.Status)
		assert.Equal(t, assignment.PriorityMedium, later.Priority)

		got, err := assignments.GetAssignmentByID(ctx, sooner.ID)
		require.NoError(t, err)
		assert.Equal(t, sooner.Title, got.Title)
		assert.True(t, sooner.DueDate.Equal(got.DueDate))
		assert.False(t, got.Grade.Valid)

		ids := func(list []assignment.Assignment) []int {
			res := make([]int, 0, len(list))
			for _, a := range list {
				res = append(res, a.ID)
			}
			return res
		}

		list, err = assignments.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{orphan.ID, sooner.ID, other.ID, later.ID}, ids(list)) // by due date

		list, err = assignments.QueryAssignmentsByCourse(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{sooner.ID, later.ID}, ids(list))

		list, err = assignments.QueryAssignmentsByCourse(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, list)

		sooner.Status = assignment.StatusCompleted
		sooner.Grade = null.Float64From(88)
		_, err = assignments.UpdateAssignment(ctx, sooner)
		require.NoError(t, err)
		got, err = assignments.GetAssignmentByID(ctx, sooner.ID)
		require.NoError(t, err)
		assert.Equal(t, assignment.StatusCompleted, got.Status)
		assert.Equal(t, null.Float64From(88), got.Grade)

		_, err = assignments.UpdateAssignment(ctx, assignment.Assignment{ID: 9999, Title: "Ghost", DueDate: now})
		assert.Error(t, err)

		deleted, err := assignments.DeleteAssignment(ctx, orphan.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = assignments.DeleteAssignment(ctx, orphan.ID)
		assert.True(t, core.IsNotFound(err), "DeleteAssignment() twice: %v", err)
		assert.False(t, deleted)

		_, err = assignments.GetAssignmentByID(ctx, orphan.ID)
		assert.True(t, core.IsNotFound(err), "GetAssignmentByID() deleted: %v", err)
	})
}
