package dummydb

import (
	"context"
	"sync"
	"time"

	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
)

// DefaultDelay is the artificial latency of every call, mimicking a remote store.
const DefaultDelay = 300 * time.Millisecond

type (
	// Options configures a DB.
	Options struct {
		Delay    time.Duration // 0 disables the latency
		Fixtures bool          // seed the demo courses & assignments
		Now      time.Time     // reference of the fixtures' relative due dates; zero means time.Now()
	}

	// DB is an in-memory record store. The zero value is not usable, see Open.
	DB struct {
		delay      time.Duration
		course     *courseTable
		assignment *assignmentTable
	}

	courseTable struct {
		sync.RWMutex
		pk    int
		table map[int]*course.Course
	}

	assignmentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*assignment.Assignment
	}
)

func Open(opts Options) (*DB, error) {
	db := &DB{
		delay:      opts.Delay,
		course:     &courseTable{table: make(map[int]*course.Course)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
	}
	if opts.Fixtures {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		db.seed(now)
	}
	return db, nil
}

// wait sleeps the artificial delay, or less if `ctx` is done first. It never holds a table lock.
func (db *DB) wait(ctx context.Context) error {
	if db.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(db.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (db *DB) seed(now time.Time) {
	for _, c := range CourseFixtures() {
		c := c
		db.course.pk++
		c.ID = db.course.pk
		db.course.table[c.ID] = &c
	}
	for _, a := range AssignmentFixtures(now) {
		a := a
		db.assignment.pk++
		a.ID = db.assignment.pk
		db.assignment.table[a.ID] = &a
	}
}
