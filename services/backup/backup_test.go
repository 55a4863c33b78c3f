package backupsvc_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/report"
	backupsvc "github.com/apper-canvas/insta-studyhub-auto/services/backup"
	dummydb "github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
)

type memStorage struct {
	err         error
	key         string
	contentType string
	data        []byte
}

func (s *memStorage) Upload(_ context.Context, key, contentType string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.data = key, contentType, data
	return "mem://" + key, nil
}

func newReports(t *testing.T) *report.Service {
	t.Helper()
	db, err := dummydb.Open(dummydb.Options{Fixtures: true})
	require.NoError(t, err)
	return report.NewService(
		course.NewService(dummydb.NewCourseRepository(db)),
		assignment.NewService(dummydb.NewAssignmentRepository(db)),
		7,
	)
}

func TestKey(t *testing.T) {
	taken := time.Date(2024, time.October, 16, 7, 5, 9, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "snapshots/studyhub-20241016T120509Z.json", backupsvc.Key(report.Snapshot{TakenAt: taken}))
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() { backupsvc.NewService(nil, &memStorage{}) })
	assert.Panics(t, func() { backupsvc.NewService(newReports(t), nil) })
}

func TestService_Run(t *testing.T) {
	storage := new(memStorage)
	svc := backupsvc.NewService(newReports(t), storage)

	url, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mem://"+storage.key, url)
	assert.Regexp(t, `^snapshots/studyhub-\d{8}T\d{6}Z\.json$`, storage.key)
	assert.Equal(t, "application/json", storage.contentType)

	var snap report.Snapshot
	require.NoError(t, json.Unmarshal(storage.data, &snap))
	assert.Len(t, snap.Courses, 4)
	assert.Len(t, snap.Assignments, 8)
	assert.Equal(t, backupsvc.Key(snap), storage.key)
}

func TestService_Run_failures(t *testing.T) {
	t.Run("storage", func(t *testing.T) {
		down := errors.New("b2 down")
		svc := backupsvc.NewService(newReports(t), &memStorage{err: down})

		_, err := svc.Run(context.Background())
		assert.EqualError(t, err, "uploading snapshot: b2 down")
		assert.Equal(t, down, errors.Cause(err))
	})

	t.Run("snapshot", func(t *testing.T) {
		storage := new(memStorage)
		svc := backupsvc.NewService(newReports(t), storage)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Run(ctx)
		assert.Equal(t, context.Canceled, errors.Cause(err))
		assert.Empty(t, storage.key)
	})
}
