package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	testutil "github.com/apper-canvas/insta-studyhub-auto/tests"
)

func TestRecordStores(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "studyhub.db"), Options{})
	require.NoError(t, err)
	defer db.Close()

	testutil.CheckRecordStores(t, NewCourseRepository(db), NewAssignmentRepository(db))
}

func TestOpen_fixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "studyhub.db")
	now := time.Date(2024, time.October, 16, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	db, err := Open(path, Options{Fixtures: true, Now: now})
	require.NoError(t, err)

	courses, err := NewCourseRepository(db).QueryAllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 4)

	assignments := NewAssignmentRepository(db)
	list, err := assignments.QueryAllAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 8)
	assert.Equal(t, 8, list[0].ID) // due 8 days ago

	// edits survive reopening, fixtures are only seeded in new files
	a, err := assignments.GetAssignmentByID(ctx, 1)
	require.NoError(t, err)
	a.Status = assignment.StatusCompleted
	_, err = assignments.UpdateAssignment(ctx, a)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path, Options{Fixtures: true, Now: now})
	require.NoError(t, err)
	defer db.Close()

	list, err = NewAssignmentRepository(db).QueryAllAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 8)

	a, err = NewAssignmentRepository(db).GetAssignmentByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCompleted, a.Status)
	assert.True(t, now.Add(4*time.Hour).Equal(a.DueDate))
}
